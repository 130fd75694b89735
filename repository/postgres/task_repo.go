package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/todoforge/backend/domain"
	"github.com/todoforge/backend/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
// Task ids come from the table's BIGSERIAL sequence, which never decrements
// and never reissues a value, deletions included.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

const taskColumns = `id, user_id, title, description, completed, category, priority, created_at, updated_at`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO tasks (user_id, title, description, completed, category, priority)
	VALUES ($1, $2, $3, FALSE, $4, $5)
	RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query,
		task.OwnerID,
		task.Title,
		task.Description,
		task.Category,
		task.Priority,
	)
	return scanTask(row)
}

func (r *taskRepository) GetByID(ctx context.Context, id int64, owner string) (*domain.Task, error) {
	// Ownership is part of the predicate: a foreign task scans as no rows,
	// identical to a missing one.
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE id = $1 AND ($2 = '' OR user_id = $2)
	`
	row := r.pool.QueryRow(ctx, query, id, owner)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR user_id = $1)
	ORDER BY id ASC
	`
	rows, err := r.pool.Query(ctx, query, filter.Owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, id int64, owner string, patch domain.TaskPatch) (*domain.Task, error) {
	// COALESCE keeps unsupplied fields: a nil pointer arrives as NULL and
	// falls through to the current value, while a pointer to "" overwrites.
	const query = `
	UPDATE tasks
	SET title = COALESCE($3, title),
		description = COALESCE($4, description),
		category = COALESCE($5, category),
		priority = COALESCE($6, priority),
		completed = COALESCE($7, completed),
		updated_at = NOW()
	WHERE id = $1 AND ($2 = '' OR user_id = $2)
	RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query,
		id,
		owner,
		patch.Title,
		patch.Description,
		patch.Category,
		patch.Priority,
		patch.Completed,
	)
	return scanTask(row)
}

func (r *taskRepository) Delete(ctx context.Context, id int64, owner string) error {
	const query = `DELETE FROM tasks WHERE id = $1 AND ($2 = '' OR user_id = $2)`
	tag, err := r.pool.Exec(ctx, query, id, owner)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) ToggleComplete(ctx context.Context, id int64, owner string) (*domain.Task, error) {
	const query = `
	UPDATE tasks
	SET completed = NOT completed,
		updated_at = NOW()
	WHERE id = $1 AND ($2 = '' OR user_id = $2)
	RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query, id, owner)
	return scanTask(row)
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.OwnerID,
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.Category,
		&task.Priority,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}
