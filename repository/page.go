package repository

import "github.com/taskdeck/backend/domain"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageRequest is a zero-indexed pagination window.
type PageRequest struct {
	Page int
	Size int
}

// Normalize clamps the window: sizes above 100 are capped at 100, sizes
// below 1 fall back to 10, and negative pages become page 0.
func (p PageRequest) Normalize() PageRequest {
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	if p.Size < 1 {
		p.Size = defaultPageSize
	}
	if p.Page < 0 {
		p.Page = 0
	}
	return p
}

// Offset returns the row offset for the window.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// TaskPage is a bounded, ordered slice of matching tasks plus pagination
// metadata.
type TaskPage struct {
	Items         []domain.Task
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewTaskPage assembles a page from the fetched items and the total number
// of matching rows.
func NewTaskPage(items []domain.Task, page PageRequest, total int64) *TaskPage {
	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	return &TaskPage{
		Items:         items,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// First reports whether this is the first page.
func (p *TaskPage) First() bool {
	return p.Page == 0
}

// Last reports whether this is the last page. An empty result set counts
// as its own last page.
func (p *TaskPage) Last() bool {
	return p.TotalPages == 0 || p.Page == p.TotalPages-1
}
