package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taskdeck/backend/repository"
)

func boolPtr(b bool) *bool { return &b }

func TestBuildTaskPredicateNoFilters(t *testing.T) {
	where, args := buildTaskPredicate(repository.TaskFilter{})
	require.Empty(t, where)
	require.Empty(t, args)
}

func TestBuildTaskPredicateCompletedOnly(t *testing.T) {
	where, args := buildTaskPredicate(repository.TaskFilter{Completed: boolPtr(true)})
	require.Equal(t, " WHERE completed = $1", where)
	require.Equal(t, []any{true}, args)
}

func TestBuildTaskPredicateSearchOnly(t *testing.T) {
	where, args := buildTaskPredicate(repository.TaskFilter{Search: "milk"})
	require.Equal(t,
		" WHERE (title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')",
		where)
	require.Equal(t, []any{"milk"}, args)
}

func TestBuildTaskPredicateSearchAndCompleted(t *testing.T) {
	where, args := buildTaskPredicate(repository.TaskFilter{
		Search:    "milk",
		Completed: boolPtr(false),
	})
	require.Equal(t,
		" WHERE (title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%') AND completed = $2",
		where)
	require.Equal(t, []any{"milk", false}, args)
}

func TestNullString(t *testing.T) {
	require.Nil(t, nullString(""))
	require.Equal(t, "note", nullString("note"))
}
