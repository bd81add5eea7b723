package journal

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"), "journal")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndSize(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		err := store.Append(Entry{
			TaskID:    fmt.Sprintf("task-%d", i),
			Operation: "create",
			Data:      json.RawMessage(`{"title":"x"}`),
		})
		require.NoError(t, err)
	}

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
}

func TestAppendFillsDefaults(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Append(Entry{TaskID: "task-1", Operation: "delete"}))

	entries, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestRecentNewestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := store.Append(Entry{
			ID:        fmt.Sprintf("entry-%d", i),
			TaskID:    "task-1",
			Operation: "update",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	entries, err := store.Recent(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "entry-4", entries[0].ID)
	assert.Equal(t, "entry-3", entries[1].ID)
	assert.Equal(t, "entry-2", entries[2].ID)
}

func TestCleanupRemovesOldEntries(t *testing.T) {
	store := openTestStore(t)

	cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(Entry{
		ID:        "old",
		TaskID:    "task-1",
		Operation: "create",
		Timestamp: cutoff.Add(-time.Hour),
	}))
	require.NoError(t, store.Append(Entry{
		ID:        "fresh",
		TaskID:    "task-2",
		Operation: "create",
		Timestamp: cutoff.Add(time.Hour),
	}))

	require.NoError(t, store.Cleanup(cutoff))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "fresh", entries[0].ID)
}

func TestClosedStoreErrors(t *testing.T) {
	var store *Store
	require.Error(t, store.Append(Entry{}))

	_, err := store.Size()
	require.Error(t, err)
}
