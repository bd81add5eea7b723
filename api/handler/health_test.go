package handler

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/backend/internal/infrastructure/journal"
	"github.com/taskdeck/backend/internal/infrastructure/monitor"
)

func newTestHealthHandler(t *testing.T) (*HealthHandler, *journal.Store) {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"), "journal")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	mon := monitor.New(nil, nil, store, time.Minute, nil)
	return NewHealthHandler(mon, store, time.Second, nil), store
}

func TestCheckDegradedWithoutDatabase(t *testing.T) {
	h, _ := newTestHealthHandler(t)

	ctx := newRequestCtx(http.MethodGet, "/health", nil)
	h.Check(ctx)

	require.Equal(t, http.StatusServiceUnavailable, ctx.Response.StatusCode())
	env := decodeEnvelope(t, ctx)
	assert.False(t, env.Success)
	assert.Equal(t, "Service degraded", env.Message)
}

func TestRecentChangesReturnsNewestFirst(t *testing.T) {
	h, store := newTestHealthHandler(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		require.NoError(t, store.Append(journal.Entry{
			ID:        id,
			TaskID:    "task-1",
			Operation: "update",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	ctx := newRequestCtx(http.MethodGet, "/health/journal?limit=2", nil)
	h.RecentChanges(ctx)

	require.Equal(t, http.StatusOK, ctx.Response.StatusCode())
	env := decodeEnvelope(t, ctx)
	require.True(t, env.Success)

	entries, ok := env.Data.([]any)
	require.True(t, ok)
	require.Len(t, entries, 2)

	newest, ok := entries[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "third", newest["id"])
}

func TestRecentChangesInvalidLimit(t *testing.T) {
	h, _ := newTestHealthHandler(t)

	ctx := newRequestCtx(http.MethodGet, "/health/journal?limit=abc", nil)
	h.RecentChanges(ctx)

	require.Equal(t, http.StatusBadRequest, ctx.Response.StatusCode())
	env := decodeEnvelope(t, ctx)
	assert.Equal(t, invalidParam("limit"), env.Message)
}
