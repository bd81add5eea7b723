package domain

import "time"

// Task is the single domain entity: a title/description/completion record
// with lifecycle timestamps. IDs and timestamps are assigned by the task
// use case, never by the database.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
