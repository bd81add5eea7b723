package task

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
	"github.com/taskdeck/backend/usecase"
)

// CreateTaskInput carries the writable fields for task creation.
type CreateTaskInput struct {
	Title       string `json:"title" validate:"required,notblank,min=3,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

// UpdateTaskInput carries the writable fields for a full update. A nil
// Completed leaves the stored completion state unchanged.
type UpdateTaskInput struct {
	Title       string `json:"title" validate:"required,notblank,min=3,max=120"`
	Description string `json:"description" validate:"max=2000"`
	Completed   *bool  `json:"completed"`
}

type UseCase struct {
	tasks    repository.TaskRepository
	journal  usecase.ChangeJournal
	validate *validator.Validate
	clock    func() time.Time
	newID    func() string
	logger   *zap.Logger
}

// Option customizes a UseCase, mainly for deterministic ids and timestamps
// in tests.
type Option func(*UseCase)

func WithClock(clock func() time.Time) Option {
	return func(uc *UseCase) {
		if clock != nil {
			uc.clock = clock
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(uc *UseCase) {
		if newID != nil {
			uc.newID = newID
		}
	}
}

func New(tasks repository.TaskRepository, journal usecase.ChangeJournal, logger *zap.Logger, opts ...Option) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	uc := &UseCase{
		tasks:    tasks,
		journal:  journal,
		validate: newValidator(),
		clock:    func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// CreateTask validates the input, assigns an id and timestamps, and persists
// the new task. New tasks always start pending.
func (uc *UseCase) CreateTask(ctx context.Context, in CreateTaskInput) (*domain.Task, error) {
	if err := uc.validateInput(in); err != nil {
		return nil, err
	}

	now := uc.clock()
	task := &domain.Task{
		ID:          uc.newID(),
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	uc.logger.Info("task created", zap.String("task_id", task.ID))
	uc.recordChange(ctx, usecase.OperationCreate, task)
	return task, nil
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

// ListTasks normalizes the filter and pagination window and delegates to the
// repository. All four filter variants share ordering and pagination.
func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter, page repository.PageRequest) (*repository.TaskPage, error) {
	return uc.tasks.List(ctx, filter.Normalize(), page.Normalize())
}

// UpdateTask overwrites title and description and, only when the caller
// supplied a value, the completion state. Reads and writes happen as one
// atomic statement in the repository; concurrent updates are last-write-wins.
func (uc *UseCase) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*domain.Task, error) {
	if err := uc.validateInput(in); err != nil {
		return nil, err
	}

	updated, err := uc.tasks.Update(ctx, repository.TaskUpdate{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		UpdatedAt:   uc.clock(),
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("task updated", zap.String("task_id", id))
	uc.recordChange(ctx, usecase.OperationUpdate, updated)
	return updated, nil
}

// ToggleTask flips the completion state of an existing task.
func (uc *UseCase) ToggleTask(ctx context.Context, id string) (*domain.Task, error) {
	updated, err := uc.tasks.Toggle(ctx, id, uc.clock())
	if err != nil {
		return nil, err
	}

	uc.logger.Info("task toggled",
		zap.String("task_id", id),
		zap.Bool("completed", updated.Completed))
	uc.recordChange(ctx, usecase.OperationToggle, updated)
	return updated, nil
}

// DeleteTask removes the task permanently. Deleting an absent id is a
// not-found failure, never a silent success.
func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("task deleted", zap.String("task_id", id))
	uc.recordChange(ctx, usecase.OperationDelete, &domain.Task{ID: id})
	return nil
}

func (uc *UseCase) recordChange(ctx context.Context, operation string, task *domain.Task) {
	if uc.journal == nil {
		return
	}
	if err := uc.journal.RecordTaskChange(ctx, operation, task); err != nil {
		uc.logger.Warn("failed to record task change",
			zap.String("operation", operation),
			zap.Error(err))
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	// required lets whitespace-only strings through; titles must carry text.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}

func (uc *UseCase) validateInput(in any) error {
	err := uc.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.WrapError(domain.ErrCodeInternal, "input validation failed", err)
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fe.Field()+": "+fieldMessage(fe))
	}
	return domain.NewValidationError(details)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	default:
		return "is invalid"
	}
}
