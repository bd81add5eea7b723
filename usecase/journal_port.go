package usecase

import (
	"context"

	"github.com/taskdeck/backend/domain"
)

// Operation names recorded in the change journal.
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationToggle = "toggle"
	OperationDelete = "delete"
)

// ChangeJournal abstracts the mutation audit trail so use cases stay
// storage-agnostic. Recording is best-effort; callers log failures and
// never surface them.
type ChangeJournal interface {
	RecordTaskChange(ctx context.Context, operation string, task *domain.Task) error
}
