package transport

import (
	"time"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

// Default messages for envelopes that do not carry a specific one.
const (
	MsgSuccess       = "Operation successful"
	MsgValidation    = "Validation failed"
	MsgMalformedBody = "Request body is not valid JSON"
	MsgInternal      = "Internal server error. Please try again later."
)

// Envelope is the uniform wrapper returned for every API call, success or
// failure. Errors is populated only for validation failures, one entry per
// violated field.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewSuccess returns a success envelope with a message and payload.
func NewSuccess(message string, data interface{}) Envelope {
	return Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// NewSuccessData returns a success envelope with the generic default message.
func NewSuccessData(data interface{}) Envelope {
	return NewSuccess(MsgSuccess, data)
}

// NewSuccessMessage returns a success envelope with no payload.
func NewSuccessMessage(message string) Envelope {
	return Envelope{
		Success:   true,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewError returns a failure envelope.
func NewError(message string) Envelope {
	return Envelope{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewErrorWithDetails returns a failure envelope carrying per-field messages.
func NewErrorWithDetails(message string, errs []string) Envelope {
	return Envelope{
		Success:   false,
		Message:   message,
		Errors:    errs,
		Timestamp: time.Now().UTC(),
	}
}

// TaskResponse is the wire shape of a task. Description is a pointer so a
// task without one serializes as an explicit null, not an omitted key.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func NewTaskResponse(task *domain.Task) TaskResponse {
	var description *string
	if task.Description != "" {
		description = &task.Description
	}
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// PageResponse is the wire shape of a listing page.
type PageResponse struct {
	Content       []TaskResponse `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	First         bool           `json:"first"`
	Last          bool           `json:"last"`
}

func NewPageResponse(page *repository.TaskPage) PageResponse {
	content := make([]TaskResponse, 0, len(page.Items))
	for i := range page.Items {
		content = append(content, NewTaskResponse(&page.Items[i]))
	}
	return PageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		First:         page.First(),
		Last:          page.Last(),
	}
}
