package client

import (
	"context"
	"time"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

// Clock abstracts the timer service injected into views, so rendering code
// and tests control time explicitly instead of polling a global.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// LoginView holds the authentication form state. On success it reports the
// route the user should land on, mirroring the admin/employee split.
type LoginView struct {
	api *APIClient

	Session *Session
	Err     string
}

func NewLoginView(api *APIClient) *LoginView {
	return &LoginView{api: api}
}

// Submit attempts a login. The server message is kept verbatim for the
// inline banner.
func (v *LoginView) Submit(ctx context.Context, email, password string) error {
	v.Err = ""
	session, err := v.api.Login(ctx, email, password)
	if err != nil {
		if apiErr, ok := err.(*APIError); ok {
			v.Err = apiErr.Message
		} else {
			v.Err = err.Error()
		}
		return err
	}
	v.Session = session
	return nil
}

// Route returns the view the authenticated user belongs on.
func (v *LoginView) Route() string {
	if v.Session == nil {
		return "/login"
	}
	if v.Session.User.Role == domain.RoleAdmin {
		return "/admindashboard"
	}
	return "/dashboard"
}

// AdminView holds the admin dashboard state: the employee directory, the
// full task list and the current error banner.
type AdminView struct {
	api *APIClient

	Employees     []Employee
	Tasks         []ports.TaskWithAssignee
	Err           string
	RedirectLogin bool
}

func NewAdminView(api *APIClient) *AdminView {
	return &AdminView{api: api}
}

// Load fetches the directory and the task list. An auth failure on the
// initial load flips RedirectLogin instead of surfacing a banner.
func (v *AdminView) Load(ctx context.Context) error {
	v.Err = ""
	v.RedirectLogin = false

	employees, err := v.api.Employees(ctx)
	if err != nil {
		return v.fail(err)
	}
	tasks, err := v.api.AllTasks(ctx)
	if err != nil {
		return v.fail(err)
	}

	v.Employees = employees
	v.Tasks = tasks
	return nil
}

// CreateTask submits a new task and refreshes the list on success.
func (v *AdminView) CreateTask(ctx context.Context, task NewTask) error {
	v.Err = ""
	if _, err := v.api.CreateTask(ctx, task); err != nil {
		return v.fail(err)
	}
	tasks, err := v.api.AllTasks(ctx)
	if err != nil {
		return v.fail(err)
	}
	v.Tasks = tasks
	return nil
}

// ResolveIssue clears a task's issue flag and mirrors the server's response
// into local state.
func (v *AdminView) ResolveIssue(ctx context.Context, taskID string) error {
	v.Err = ""
	cleared := false
	updated, err := v.api.UpdateTask(ctx, taskID, TaskPatch{HasIssue: &cleared})
	if err != nil {
		return v.fail(err)
	}
	v.applyUpdate(updated)
	return nil
}

func (v *AdminView) applyUpdate(updated *domain.Task) {
	for i := range v.Tasks {
		if v.Tasks[i].ID == updated.ID {
			assignee := v.Tasks[i].Assignee
			v.Tasks[i].Task = *updated
			v.Tasks[i].Assignee = assignee
			return
		}
	}
}

func (v *AdminView) fail(err error) error {
	if IsAuthFailure(err) {
		v.RedirectLogin = true
		return err
	}
	if apiErr, ok := err.(*APIError); ok {
		v.Err = apiErr.Message
	} else {
		v.Err = err.Error()
	}
	return err
}

// EmployeeView holds the employee dashboard state: the caller's tasks and
// the clock-driven header time.
type EmployeeView struct {
	api   *APIClient
	clock Clock

	Tasks         []domain.Task
	Err           string
	RedirectLogin bool
}

func NewEmployeeView(api *APIClient, clock Clock) *EmployeeView {
	if clock == nil {
		clock = SystemClock{}
	}
	return &EmployeeView{api: api, clock: clock}
}

// Load fetches the caller's own tasks.
func (v *EmployeeView) Load(ctx context.Context) error {
	v.Err = ""
	v.RedirectLogin = false

	tasks, err := v.api.OwnTasks(ctx)
	if err != nil {
		return v.fail(err)
	}
	v.Tasks = tasks
	return nil
}

// SetStatus moves one of the caller's tasks to the given status.
func (v *EmployeeView) SetStatus(ctx context.Context, taskID string, status domain.TaskStatus) error {
	v.Err = ""
	s := string(status)
	updated, err := v.api.UpdateTask(ctx, taskID, TaskPatch{Status: &s})
	if err != nil {
		return v.fail(err)
	}
	v.applyUpdate(updated)
	return nil
}

// RaiseIssue flags one of the caller's tasks as having an issue.
func (v *EmployeeView) RaiseIssue(ctx context.Context, taskID string) error {
	v.Err = ""
	raised := true
	updated, err := v.api.UpdateTask(ctx, taskID, TaskPatch{HasIssue: &raised})
	if err != nil {
		return v.fail(err)
	}
	v.applyUpdate(updated)
	return nil
}

// HeaderTime renders the dashboard clock from the injected Clock.
func (v *EmployeeView) HeaderTime() string {
	return v.clock.Now().Format("Mon, Jan 2 15:04:05")
}

func (v *EmployeeView) applyUpdate(updated *domain.Task) {
	for i := range v.Tasks {
		if v.Tasks[i].ID == updated.ID {
			v.Tasks[i] = *updated
			return
		}
	}
}

func (v *EmployeeView) fail(err error) error {
	if IsAuthFailure(err) {
		v.RedirectLogin = true
		return err
	}
	if apiErr, ok := err.(*APIError); ok {
		v.Err = apiErr.Message
	} else {
		v.Err = err.Error()
	}
	return err
}
