package journal

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded task mutation. Data holds the task snapshot as it
// looked after the mutation (id only for deletes).
type Entry struct {
	ID        string          `json:"id"`
	TaskID    string          `json:"task_id"`
	Operation string          `json:"operation"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (e *Entry) normalize() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
}
