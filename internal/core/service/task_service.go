package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

// TaskService implements the task lifecycle and authorization rules.
type TaskService struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, logger: logger}
}

// ListAllTasks returns every task, newest first, each with its assignee
// resolved to {name, avatar}. A task whose assignee no longer resolves keeps
// the bare reference.
func (s *TaskService) ListAllTasks(ctx context.Context, callerRole string) ([]*ports.TaskWithAssignee, error) {
	if callerRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// Resolve each distinct assignee once.
	resolved := make(map[string]*domain.User)
	out := make([]*ports.TaskWithAssignee, 0, len(tasks))
	for _, t := range tasks {
		item := &ports.TaskWithAssignee{Task: *t, Assignee: domain.Assignee{ID: t.AssignedTo}}
		user, ok := resolved[t.AssignedTo]
		if !ok {
			user, err = s.users.FindByID(ctx, t.AssignedTo)
			if err != nil {
				if !errors.Is(err, domain.ErrUserNotFound) {
					return nil, err
				}
				user = nil
			}
			resolved[t.AssignedTo] = user
		}
		if user != nil {
			item.Assignee.Name = user.Name
			item.Assignee.Avatar = user.Avatar
		}
		out = append(out, item)
	}
	return out, nil
}

// ListOwnTasks returns the caller's tasks, newest first.
func (s *TaskService) ListOwnTasks(ctx context.Context, callerID string) ([]*domain.Task, error) {
	if callerID == "" {
		return nil, domain.ErrValidation
	}
	return s.tasks.ListByAssignee(ctx, callerID)
}

// CreateTask persists a new task with the default lifecycle state. The
// assignee must reference an existing user.
func (s *TaskService) CreateTask(ctx context.Context, callerRole string, input ports.CreateTaskInput) (*domain.Task, error) {
	if callerRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if input.Title == "" || input.AssigneeID == "" {
		return nil, domain.ErrValidation
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, domain.ErrValidation
	}

	if _, err := s.users.FindByID(ctx, input.AssigneeID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.StatusPending,
		Priority:    priority,
		DueDate:     input.DueDate,
		HasIssue:    false,
		AssignedTo:  input.AssigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("assignee", created.AssignedTo).Str("priority", string(created.Priority)).Msg("task created")
	return created, nil
}

// UpdateTask applies a partial update after checking ownership: allowed to
// the task's assignee or any admin. Setting status Done forces the issue flag
// off, even when the same patch sets it explicitly.
func (s *TaskService) UpdateTask(ctx context.Context, callerID, callerRole, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if task.AssignedTo != callerID && callerRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, domain.ErrValidation
		}
		if *patch.Status == domain.StatusDone {
			cleared := false
			patch.HasIssue = &cleared
		}
	}

	updated, err := s.tasks.Update(ctx, taskID, patch, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", taskID).Str("caller", callerID).Msg("task updated")
	return updated, nil
}

// ResolveIssue clears the issue flag. A second call is a harmless repeat of
// the same write.
func (s *TaskService) ResolveIssue(ctx context.Context, callerID, callerRole, taskID string) (*domain.Task, error) {
	cleared := false
	return s.UpdateTask(ctx, callerID, callerRole, taskID, ports.TaskPatch{HasIssue: &cleared})
}
