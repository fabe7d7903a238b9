package ports

import (
	"context"
	"time"

	"github.com/taskboard/task-system/internal/core/domain"
)

// CreateTaskInput carries all data needed to create a task.
type CreateTaskInput struct {
	Title       string
	Description string
	AssigneeID  string
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// TaskWithAssignee pairs a task with its assignee resolved from the employee
// directory, for the admin listing.
type TaskWithAssignee struct {
	domain.Task
	Assignee domain.Assignee `json:"assignee"`
}

// TaskService implements the task lifecycle and its authorization rules.
type TaskService interface {
	// ListAllTasks returns every task, newest first, assignee resolved to
	// {name, avatar}. Admin-only.
	ListAllTasks(ctx context.Context, callerRole string) ([]*TaskWithAssignee, error)
	// ListOwnTasks returns the caller's tasks, newest first.
	ListOwnTasks(ctx context.Context, callerID string) ([]*domain.Task, error)
	// CreateTask persists a new task with status Pending and no issue flag.
	// Admin-only; the assignee must reference an existing user.
	CreateTask(ctx context.Context, callerRole string, input CreateTaskInput) (*domain.Task, error)
	// UpdateTask applies a partial update. Allowed to the task's assignee or
	// any admin. Setting status Done forces the issue flag off, regardless
	// of any explicit value in the same patch.
	UpdateTask(ctx context.Context, callerID, callerRole, taskID string, patch TaskPatch) (*domain.Task, error)
	// ResolveIssue clears the issue flag; same authorization rule as
	// UpdateTask. Idempotent.
	ResolveIssue(ctx context.Context, callerID, callerRole, taskID string) (*domain.Task, error)
}
