package api

import "github.com/tasksapi/tasks-api/internal/domain"

// Response messages with fixed wording.
const (
	MessageTaskNotFound  = "Task not found"
	MessageTaskDeleted   = "Task deleted"
	MessageInternalError = "Internal server error"
)

// TaskRequest is the body of create and update requests. Pointer fields
// distinguish an absent field from its zero value.
type TaskRequest struct {
	Title       *string `json:"title"       validate:"required,max=50"`
	Description *string `json:"description" validate:"required,max=100"`
	Completed   *bool   `json:"completed"`
}

// ToDomain converts the request into a domain Task, applying the default for
// an absent completed flag.
func (r *TaskRequest) ToDomain() (*domain.Task, error) {
	var title, description string
	if r.Title != nil {
		title = *r.Title
	}
	if r.Description != nil {
		description = *r.Description
	}
	return domain.NewTask(title, description, r.Completed)
}

// TaskResponse is the JSON representation of a task. The identifier is never
// part of the body.
type TaskResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// ValidationErrorDetail describes one failing input location.
type ValidationErrorDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is the body of a 422 response.
type ValidationErrorResponse struct {
	Detail []ValidationErrorDetail `json:"detail"`
}

// WelcomeResponse is the body of GET /.
type WelcomeResponse struct {
	Hello string `json:"Hello"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
	}
}
