// Package client provides a typed consumer of the task-system API plus the
// state holders backing the login, admin and employee views. Views own their
// state explicitly and receive a Clock rather than reaching for a global
// timer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

// APIError carries the status code and server message of a failed call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
}

// IsAuthFailure reports whether the error should force a return to the login
// view (expired or missing session).
func IsAuthFailure(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}

// Session is the identity returned by login and attached to later calls.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// User mirrors the claim set embedded in the session token.
type User struct {
	ID     string `json:"id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Employee is one entry of the admin employee directory.
type Employee struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Status   string `json:"status"`
	Avatar   string `json:"avatar"`
}

// TaskPatch is the wire form of a partial task update; nil fields are omitted
// from the payload.
type TaskPatch struct {
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	HasIssue    *bool   `json:"has_issue,omitempty"`
}

// NewTask is the payload for task creation.
type NewTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssignedTo  string     `json:"assigned_to"`
	Priority    string     `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// APIClient is a thin typed wrapper over the HTTP API.
type APIClient struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates an APIClient for the given base URL. A nil httpClient falls
// back to a client with a request timeout.
func New(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &APIClient{baseURL: baseURL, http: httpClient}
}

// SetToken attaches a bearer token to all subsequent calls.
func (c *APIClient) SetToken(token string) { c.token = token }

// Token returns the current bearer token, empty when logged out.
func (c *APIClient) Token() string { return c.token }

func (c *APIClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Message == "" {
			envelope.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Signup creates an account. No session is issued.
func (c *APIClient) Signup(ctx context.Context, username, name, email, password string) error {
	payload := map[string]string{
		"username": username,
		"name":     name,
		"email":    email,
		"password": password,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/signup", payload, nil)
}

// Login authenticates and stores the returned token on the client.
func (c *APIClient) Login(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}
	var session Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", payload, &session); err != nil {
		return nil, err
	}
	c.token = session.Token
	return &session, nil
}

// Logout clears presence server-side and drops the local token either way.
func (c *APIClient) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.token = ""
	return err
}

// OwnTasks lists the caller's tasks, newest first.
func (c *APIClient) OwnTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// AllTasks lists every task with its assignee resolved. Admin-only.
func (c *APIClient) AllTasks(ctx context.Context) ([]ports.TaskWithAssignee, error) {
	var tasks []ports.TaskWithAssignee
	if err := c.do(ctx, http.MethodGet, "/api/admin/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Employees lists the employee directory. Admin-only.
func (c *APIClient) Employees(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	if err := c.do(ctx, http.MethodGet, "/api/admin/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// CreateTask creates a task. Admin-only.
func (c *APIClient) CreateTask(ctx context.Context, task NewTask) (*domain.Task, error) {
	var created domain.Task
	if err := c.do(ctx, http.MethodPost, "/api/admin/tasks", task, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateTask applies a partial update to a task.
func (c *APIClient) UpdateTask(ctx context.Context, taskID string, patch TaskPatch) (*domain.Task, error) {
	var updated domain.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+taskID, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
