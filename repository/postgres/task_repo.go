package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskdeck/backend/domain"
	"github.com/taskdeck/backend/repository"
)

const taskColumns = "id, title, description, completed, created_at, updated_at"

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := fmt.Sprintf("SELECT %s FROM tasks WHERE id = $1", taskColumns)
	return scanTask(id, r.pool.QueryRow(ctx, query, id))
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter, page repository.PageRequest) (*repository.TaskPage, error) {
	where, args := buildTaskPredicate(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM tasks%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		taskColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, page.Size, page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Task, 0, page.Size)
	for rows.Next() {
		task, err := scanTask("", rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return repository.NewTaskPage(items, page, total), nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.NewError(domain.ErrCodeInvalid, "nil task")
	}

	const query = `
	INSERT INTO tasks (id, title, description, completed, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		nullString(task.Description),
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	return err
}

// Update overwrites title and description and, when a value is supplied,
// completed, all in one statement so the existence check and the write
// cannot be separated by a concurrent writer. Last write wins.
func (r *taskRepository) Update(ctx context.Context, update repository.TaskUpdate) (*domain.Task, error) {
	query := fmt.Sprintf(`
	UPDATE tasks
	SET title = $2,
		description = $3,
		completed = COALESCE($4, completed),
		updated_at = $5
	WHERE id = $1
	RETURNING %s`, taskColumns)

	return scanTask(update.ID, r.pool.QueryRow(ctx, query,
		update.ID,
		update.Title,
		nullString(update.Description),
		update.Completed,
		update.UpdatedAt,
	))
}

func (r *taskRepository) Toggle(ctx context.Context, id string, updatedAt time.Time) (*domain.Task, error) {
	query := fmt.Sprintf(`
	UPDATE tasks
	SET completed = NOT completed,
		updated_at = $2
	WHERE id = $1
	RETURNING %s`, taskColumns)

	return scanTask(id, r.pool.QueryRow(ctx, query, id, updatedAt))
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.NewTaskNotFound(id)
	}
	return nil
}

// buildTaskPredicate translates the filter into exactly one of four WHERE
// variants: none, completed only, case-insensitive substring search across
// title and description, or both combined with AND. The filter is expected
// to be normalized already.
func buildTaskPredicate(filter repository.TaskFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.HasSearch() {
		args = append(args, filter.Search)
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", n, n))
	}
	if filter.Completed != nil {
		args = append(args, *filter.Completed)
		conds = append(conds, fmt.Sprintf("completed = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanTask(id string, row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var description *string

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewTaskNotFound(id)
		}
		return nil, err
	}

	if description != nil {
		task.Description = *description
	}
	return &task, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
