package repository

import (
	"context"
	"strings"
	"time"

	"github.com/taskdeck/backend/domain"
)

// TaskFilter narrows a listing to a completion state, a free-text search
// term, or both. Nil Completed and an empty Search mean "no filter".
type TaskFilter struct {
	Completed *bool
	Search    string
}

// Normalize trims the search term; a whitespace-only term counts as no search.
func (f TaskFilter) Normalize() TaskFilter {
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// HasSearch reports whether a usable search term is present.
func (f TaskFilter) HasSearch() bool {
	return f.Search != ""
}

// TaskUpdate carries the writable fields for a single-statement update.
// A nil Completed leaves the stored value untouched.
type TaskUpdate struct {
	ID          string
	Title       string
	Description string
	Completed   *bool
	UpdatedAt   time.Time
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter, page PageRequest) (*TaskPage, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, update TaskUpdate) (*domain.Task, error)
	Toggle(ctx context.Context, id string, updatedAt time.Time) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
