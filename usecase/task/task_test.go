package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

type stubRepo struct {
	getFn    func(ctx context.Context, id string) (*domain.Task, error)
	listFn   func(ctx context.Context, filter repository.TaskFilter, page repository.PageRequest) (*repository.TaskPage, error)
	createFn func(ctx context.Context, task *domain.Task) error
	updateFn func(ctx context.Context, update repository.TaskUpdate) (*domain.Task, error)
	toggleFn func(ctx context.Context, id string, updatedAt time.Time) (*domain.Task, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.getFn(ctx, id)
}

func (s *stubRepo) List(ctx context.Context, filter repository.TaskFilter, page repository.PageRequest) (*repository.TaskPage, error) {
	return s.listFn(ctx, filter, page)
}

func (s *stubRepo) Create(ctx context.Context, task *domain.Task) error {
	return s.createFn(ctx, task)
}

func (s *stubRepo) Update(ctx context.Context, update repository.TaskUpdate) (*domain.Task, error) {
	return s.updateFn(ctx, update)
}

func (s *stubRepo) Toggle(ctx context.Context, id string, updatedAt time.Time) (*domain.Task, error) {
	return s.toggleFn(ctx, id, updatedAt)
}

func (s *stubRepo) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

type stubJournal struct {
	operations []string
	tasks      []*domain.Task
	err        error
}

func (s *stubJournal) RecordTaskChange(_ context.Context, operation string, task *domain.Task) error {
	s.operations = append(s.operations, operation)
	s.tasks = append(s.tasks, task)
	return s.err
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCase(repo repository.TaskRepository, journal usecase.ChangeJournal) *UseCase {
	return New(repo, journal, nil,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "fixed-id" }),
	)
}

func validationDetails(t *testing.T, err error) []string {
	t.Helper()
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	require.Equal(t, domain.ErrCodeValidation, derr.Code)
	return derr.Details
}

func TestCreateTaskAssignsIDAndTimestamps(t *testing.T) {
	var created *domain.Task
	repo := &stubRepo{
		createFn: func(_ context.Context, task *domain.Task) error {
			created = task
			return nil
		},
	}
	journal := &stubJournal{}

	got, err := newTestUseCase(repo, journal).CreateTask(context.Background(), CreateTaskInput{
		Title:       "Buy milk",
		Description: "Two liters",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "fixed-id", got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "Two liters", got.Description)
	assert.False(t, got.Completed)
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)

	require.Equal(t, []string{usecase.OperationCreate}, journal.operations)
}

func TestCreateTaskTitleBounds(t *testing.T) {
	repo := &stubRepo{
		createFn: func(context.Context, *domain.Task) error { return nil },
	}
	uc := newTestUseCase(repo, nil)

	invalid := []string{
		"",
		"a",
		"ab",
		"    ",
		"\t\n",
		strings.Repeat("x", 121),
	}
	for _, title := range invalid {
		_, err := uc.CreateTask(context.Background(), CreateTaskInput{Title: title})
		details := validationDetails(t, err)
		require.Len(t, details, 1)
		assert.Contains(t, details[0], "title")
	}

	valid := []string{
		"abc",
		strings.Repeat("x", 120),
	}
	for _, title := range valid {
		_, err := uc.CreateTask(context.Background(), CreateTaskInput{Title: title})
		require.NoError(t, err)
	}
}

func TestCreateTaskRejectsBlankTitle(t *testing.T) {
	repo := &stubRepo{
		createFn: func(context.Context, *domain.Task) error {
			t.Fatal("blank title must not reach the repository")
			return nil
		},
	}
	uc := newTestUseCase(repo, nil)

	_, err := uc.CreateTask(context.Background(), CreateTaskInput{Title: "    "})
	details := validationDetails(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "title: is required", details[0])

	_, err = uc.UpdateTask(context.Background(), "task-1", UpdateTaskInput{Title: "   \t"})
	details = validationDetails(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "title: is required", details[0])
}

func TestCreateTaskDescriptionTooLong(t *testing.T) {
	uc := newTestUseCase(&stubRepo{}, nil)

	_, err := uc.CreateTask(context.Background(), CreateTaskInput{
		Title:       "Buy milk",
		Description: strings.Repeat("d", 2001),
	})
	details := validationDetails(t, err)
	require.Len(t, details, 1)
	assert.Contains(t, details[0], "description")
	assert.Contains(t, details[0], "2000")
}

func TestCreateTaskCollectsAllViolations(t *testing.T) {
	uc := newTestUseCase(&stubRepo{}, nil)

	_, err := uc.CreateTask(context.Background(), CreateTaskInput{
		Title:       "",
		Description: strings.Repeat("d", 2001),
	})
	details := validationDetails(t, err)
	require.Len(t, details, 2)
}

func TestCreateTaskRepositoryFailure(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &stubRepo{
		createFn: func(context.Context, *domain.Task) error { return repoErr },
	}
	journal := &stubJournal{}

	_, err := newTestUseCase(repo, journal).CreateTask(context.Background(), CreateTaskInput{Title: "Buy milk"})
	require.ErrorIs(t, err, repoErr)
	assert.Empty(t, journal.operations)
}

func TestListTasksNormalizesInputs(t *testing.T) {
	var gotFilter repository.TaskFilter
	var gotPage repository.PageRequest
	repo := &stubRepo{
		listFn: func(_ context.Context, filter repository.TaskFilter, page repository.PageRequest) (*repository.TaskPage, error) {
			gotFilter = filter
			gotPage = page
			return repository.NewTaskPage(nil, page, 0), nil
		},
	}

	_, err := newTestUseCase(repo, nil).ListTasks(context.Background(),
		repository.TaskFilter{Search: "  milk "},
		repository.PageRequest{Page: -3, Size: 500},
	)
	require.NoError(t, err)

	assert.Equal(t, "milk", gotFilter.Search)
	assert.Equal(t, 0, gotPage.Page)
	assert.Equal(t, 100, gotPage.Size)
}

func TestUpdateTaskPassesCompletionThrough(t *testing.T) {
	var gotUpdate repository.TaskUpdate
	repo := &stubRepo{
		updateFn: func(_ context.Context, update repository.TaskUpdate) (*domain.Task, error) {
			gotUpdate = update
			return &domain.Task{ID: update.ID, Title: update.Title, UpdatedAt: update.UpdatedAt}, nil
		},
	}
	uc := newTestUseCase(repo, nil)

	_, err := uc.UpdateTask(context.Background(), "task-1", UpdateTaskInput{Title: "Renamed"})
	require.NoError(t, err)
	assert.Nil(t, gotUpdate.Completed)
	assert.Equal(t, fixedNow, gotUpdate.UpdatedAt)

	done := true
	_, err = uc.UpdateTask(context.Background(), "task-1", UpdateTaskInput{Title: "Renamed", Completed: &done})
	require.NoError(t, err)
	require.NotNil(t, gotUpdate.Completed)
	assert.True(t, *gotUpdate.Completed)
}

func TestUpdateTaskNotFound(t *testing.T) {
	repo := &stubRepo{
		updateFn: func(_ context.Context, update repository.TaskUpdate) (*domain.Task, error) {
			return nil, domain.NewTaskNotFound(update.ID)
		},
	}
	journal := &stubJournal{}

	_, err := newTestUseCase(repo, journal).UpdateTask(context.Background(), "missing", UpdateTaskInput{Title: "Renamed"})

	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeNotFound, derr.Code)
	assert.Empty(t, journal.operations)
}

func TestToggleTaskRecordsChange(t *testing.T) {
	repo := &stubRepo{
		toggleFn: func(_ context.Context, id string, updatedAt time.Time) (*domain.Task, error) {
			return &domain.Task{ID: id, Completed: true, UpdatedAt: updatedAt}, nil
		},
	}
	journal := &stubJournal{}

	got, err := newTestUseCase(repo, journal).ToggleTask(context.Background(), "task-1")
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Equal(t, fixedNow, got.UpdatedAt)
	require.Equal(t, []string{usecase.OperationToggle}, journal.operations)
}

func TestDeleteTask(t *testing.T) {
	var deletedID string
	repo := &stubRepo{
		deleteFn: func(_ context.Context, id string) error {
			deletedID = id
			return nil
		},
	}
	journal := &stubJournal{}

	err := newTestUseCase(repo, journal).DeleteTask(context.Background(), "task-1")
	require.NoError(t, err)
	assert.Equal(t, "task-1", deletedID)
	require.Equal(t, []string{usecase.OperationDelete}, journal.operations)
}

func TestDeleteTaskNotFound(t *testing.T) {
	repo := &stubRepo{
		deleteFn: func(_ context.Context, id string) error {
			return domain.NewTaskNotFound(id)
		},
	}

	err := newTestUseCase(repo, nil).DeleteTask(context.Background(), "missing")
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeNotFound, derr.Code)
	assert.Contains(t, derr.Message, "missing")
}

func TestJournalFailureDoesNotFailOperation(t *testing.T) {
	repo := &stubRepo{
		createFn: func(context.Context, *domain.Task) error { return nil },
	}
	journal := &stubJournal{err: errors.New("journal offline")}

	_, err := newTestUseCase(repo, journal).CreateTask(context.Background(), CreateTaskInput{Title: "Buy milk"})
	require.NoError(t, err)
}
