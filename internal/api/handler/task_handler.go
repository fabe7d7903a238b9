package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/task-system/internal/api/metrics"
	"github.com/taskboard/task-system/internal/core/domain"
	"github.com/taskboard/task-system/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// ListAll returns every task with its assignee resolved. Admin-only.
//
// @Summary      List all tasks
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.TaskWithAssignee
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/tasks [get]
func (h *TaskHandler) ListAll(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListAllTasks(c.Request().Context(), role)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []*ports.TaskWithAssignee{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// ListOwn returns the caller's own tasks.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Task
// @Failure      401  {object}  errorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) ListOwn(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	tasks, err := h.service.ListOwnTasks(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// Create persists a new task. Admin-only.
//
// @Summary      Create a task
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	_, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.CreateTask(c.Request().Context(), role, ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssigneeID:  req.AssignedTo,
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// Update applies a partial update to a task. Allowed to the task's assignee
// or any admin; the response carries the assignee as a bare reference.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path      string             true  "Task ID"
// @Param        body    body      updateTaskRequest  true  "Fields to change"
// @Success      200     {object}  domain.Task
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      404     {object}  errorResponse
// @Router       /api/tasks/{taskId} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	patch := ports.TaskPatch{
		Description: req.Description,
		HasIssue:    req.HasIssue,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		patch.Status = &status
	}

	task, err := h.service.UpdateTask(c.Request().Context(), userID, role, c.Param("taskId"), patch)
	if err != nil {
		return err
	}

	if patch.Status != nil {
		metrics.TaskStatusUpdatesTotal.WithLabelValues(string(task.Status)).Inc()
	}
	if req.HasIssue != nil && !*req.HasIssue {
		metrics.IssuesResolvedTotal.Inc()
	}
	return c.JSON(http.StatusOK, task)
}
