package ports

import (
	"context"

	"github.com/taskboard/task-system/internal/core/domain"
)

// UserRepository defines persistence operations for the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListByRole returns all users holding the given role.
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
	// SetStatus updates the presence field only. Last write wins; callers do
	// not coordinate concurrent login/logout for the same user.
	SetStatus(ctx context.Context, id string, status string) error
}
