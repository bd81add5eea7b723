package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/internal/infrastructure/journal"
	"github.com/taskdeck/backend/usecase"
)

// JournalRecorder bridges the use-case ChangeJournal port onto the BoltDB
// journal store.
type JournalRecorder struct {
	store *journal.Store
}

func NewJournalRecorder(store *journal.Store) *JournalRecorder {
	return &JournalRecorder{store: store}
}

func (r *JournalRecorder) RecordTaskChange(ctx context.Context, operation string, task *domain.Task) error {
	if r.store == nil || task == nil {
		return domain.NewError(domain.ErrCodeInvalid, "nothing to record")
	}
	snapshot, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return r.store.Append(journal.Entry{
		TaskID:    task.ID,
		Operation: operation,
		Data:      snapshot,
		Timestamp: time.Now().UTC(),
	})
}

var _ usecase.ChangeJournal = (*JournalRecorder)(nil)
