package handler

import "time"

type createTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assigned_to" validate:"required"`
	Priority    string     `json:"priority"    validate:"omitempty,oneof=Low Medium High"`
	DueDate     *time.Time `json:"due_date"`
}

// updateTaskRequest is the explicit optional-field patch: a nil pointer means
// the field was absent from the payload and stays untouched.
type updateTaskRequest struct {
	Description *string `json:"description"`
	Status      *string `json:"status"   validate:"omitempty,oneof=Pending 'In Progress' Done"`
	HasIssue    *bool   `json:"has_issue"`
}
