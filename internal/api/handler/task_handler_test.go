package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

type stubTaskService struct {
	listAllFn      func(ctx context.Context, callerRole string) ([]*ports.TaskWithAssignee, error)
	listOwnFn      func(ctx context.Context, callerID string) ([]*domain.Task, error)
	createFn       func(ctx context.Context, callerRole string, input ports.CreateTaskInput) (*domain.Task, error)
	updateFn       func(ctx context.Context, callerID, callerRole, taskID string, patch ports.TaskPatch) (*domain.Task, error)
	resolveIssueFn func(ctx context.Context, callerID, callerRole, taskID string) (*domain.Task, error)
}

func (s *stubTaskService) ListAllTasks(ctx context.Context, callerRole string) ([]*ports.TaskWithAssignee, error) {
	return s.listAllFn(ctx, callerRole)
}

func (s *stubTaskService) ListOwnTasks(ctx context.Context, callerID string) ([]*domain.Task, error) {
	return s.listOwnFn(ctx, callerID)
}

func (s *stubTaskService) CreateTask(ctx context.Context, callerRole string, input ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, callerRole, input)
}

func (s *stubTaskService) UpdateTask(ctx context.Context, callerID, callerRole, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	return s.updateFn(ctx, callerID, callerRole, taskID, patch)
}

func (s *stubTaskService) ResolveIssue(ctx context.Context, callerID, callerRole, taskID string) (*domain.Task, error) {
	return s.resolveIssueFn(ctx, callerID, callerRole, taskID)
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, id, role string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("id", id)
	c.Set("role", role)
	return c
}

func TestTaskHandler_Create_Success(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, callerRole string, input ports.CreateTaskInput) (*domain.Task, error) {
			if callerRole != "admin" {
				t.Fatalf("unexpected role: %s", callerRole)
			}
			if input.Title != "Deploy" || input.AssigneeID != "emp1" || input.Priority != domain.PriorityHigh {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Task{
				ID:         "t1",
				Title:      input.Title,
				Status:     domain.StatusPending,
				Priority:   input.Priority,
				AssignedTo: input.AssigneeID,
			}, nil
		},
	}
	h := NewTaskHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/admin/tasks",
		`{"title":"Deploy","assigned_to":"emp1","priority":"High","due_date":"2024-01-01T00:00:00Z"}`)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "a1", "admin")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var task domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if task.Status != domain.StatusPending || task.HasIssue {
		t.Fatalf("unexpected defaults: %+v", task)
	}
}

func TestTaskHandler_Create_MissingTitle(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, callerRole string, input ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/admin/tasks", `{"assigned_to":"emp1"}`)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "a1", "admin")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Create_InvalidPriority(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, callerRole string, input ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	req := jsonRequest(http.MethodPost, "/api/admin/tasks",
		`{"title":"x","assigned_to":"emp1","priority":"Urgent"}`)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "a1", "admin")

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Update_PartialPatch(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, callerID, callerRole, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
			if callerID != "emp1" || taskID != "t1" {
				t.Fatalf("unexpected args: %s %s", callerID, taskID)
			}
			if patch.Status == nil || *patch.Status != domain.StatusDone {
				t.Fatalf("status not carried: %+v", patch)
			}
			if patch.Description != nil || patch.HasIssue != nil {
				t.Fatalf("absent fields must stay nil: %+v", patch)
			}
			return &domain.Task{ID: taskID, Status: domain.StatusDone, AssignedTo: callerID}, nil
		},
	}
	h := NewTaskHandler(stub)

	req := jsonRequest(http.MethodPut, "/api/tasks/t1", `{"status":"Done"}`)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "emp1", "employee")
	c.SetParamNames("taskId")
	c.SetParamValues("t1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var task domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if task.HasIssue {
		t.Fatalf("expected has_issue=false, got %+v", task)
	}
}

func TestTaskHandler_Update_InvalidStatus(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, callerID, callerRole, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	req := jsonRequest(http.MethodPut, "/api/tasks/t1", `{"status":"Cancelled"}`)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "emp1", "employee")
	c.SetParamNames("taskId")
	c.SetParamValues("t1")

	err := h.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestTaskHandler_Update_ForbiddenPropagates(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, callerID, callerRole, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewTaskHandler(stub)

	req := jsonRequest(http.MethodPut, "/api/tasks/t1", `{"status":"Done"}`)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "emp2", "employee")
	c.SetParamNames("taskId")
	c.SetParamValues("t1")

	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskHandler_ListAll_EmptyIsArray(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		listAllFn: func(ctx context.Context, callerRole string) ([]*ports.TaskWithAssignee, error) {
			return nil, nil
		},
	}
	h := NewTaskHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/tasks", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "a1", "admin")

	if err := h.ListAll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestTaskHandler_ListOwn(t *testing.T) {
	e := newEcho()
	stub := &stubTaskService{
		listOwnFn: func(ctx context.Context, callerID string) ([]*domain.Task, error) {
			if callerID != "emp1" {
				t.Fatalf("unexpected caller: %s", callerID)
			}
			return []*domain.Task{{ID: "t1", Title: "mine", AssignedTo: callerID}}, nil
		},
	}
	h := NewTaskHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, "emp1", "employee")

	if err := h.ListOwn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var tasks []domain.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "mine" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
}
