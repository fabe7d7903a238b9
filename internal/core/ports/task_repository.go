package ports

import (
	"context"
	"time"

	"github.com/taskboard/task-system/internal/core/domain"
)

// TaskPatch carries a partial update. Each field is independently
// presence-checked: nil means "leave untouched", never "reset".
type TaskPatch struct {
	Description *string
	Status      *domain.TaskStatus
	HasIssue    *bool
}

// TaskRepository defines persistence operations for the task store.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// ListAll returns every task ordered by creation time descending.
	ListAll(ctx context.Context) ([]*domain.Task, error)
	// ListByAssignee returns the tasks assigned to userID, newest first.
	ListByAssignee(ctx context.Context, userID string) ([]*domain.Task, error)
	// Update applies the non-nil patch fields to the task and returns the
	// updated document. The write is a single-document set; concurrent
	// updates resolve last-write-wins at the store.
	Update(ctx context.Context, id string, patch TaskPatch, updatedAt time.Time) (*domain.Task, error)
}
