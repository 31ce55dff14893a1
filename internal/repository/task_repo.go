package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"taskhub/internal/db"
	"taskhub/internal/domain"

	"github.com/jackc/pgx/v5"
)

const taskColumns = `id, user_id, title, description, completed, due_date, priority, created_at, updated_at`

type TaskRepository struct {
	db db.DB
}

func NewTaskRepository(db db.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns one page of the owner's tasks, newest first, together with
// the total number of rows matching the filter (not just the page).
func (r *TaskRepository) List(ctx context.Context, ownerID string, f domain.TaskFilter) ([]*domain.Task, int64, error) {
	where := `WHERE user_id = $1`
	args := []any{ownerID}
	if f.Completed != nil {
		where += fmt.Sprintf(` AND completed = $%d`, len(args)+1)
		args = append(args, *f.Completed)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tasks `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM tasks %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		taskColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, description, completed, due_date, priority)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		t.UserID, t.Title, t.Description, t.Completed, t.DueDate, t.Priority,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID loads a task by primary key alone. The caller is responsible for
// checking the loaded row's owner; task ids are unique across all owners,
// so a bare key lookup can land on another tenant's row.
func (r *TaskRepository) GetByID(ctx context.Context, taskID int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, taskID)
	return scanTask(row)
}

// Update applies the non-nil fields of u to the owner's task and refreshes
// updated_at. Returns the updated row, or ErrNotFound if no row matches
// both the id and the owner.
func (r *TaskRepository) Update(ctx context.Context, ownerID string, taskID int64, u domain.TaskUpdate) (*domain.Task, error) {
	set := []string{`updated_at = now()`}
	args := []any{taskID, ownerID}

	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf(`%s = $%d`, col, len(args)))
	}
	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.Completed != nil {
		add("completed", *u.Completed)
	}
	if u.DueDate != nil {
		add("due_date", *u.DueDate)
	}
	if u.Priority != nil {
		add("priority", *u.Priority)
	}

	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $1 AND user_id = $2 RETURNING %s`,
		strings.Join(set, ", "), taskColumns)
	return scanTask(r.db.QueryRow(ctx, query, args...))
}

// SetCompleted sets the completion flag to the given value (no flip).
func (r *TaskRepository) SetCompleted(ctx context.Context, ownerID string, taskID int64, completed bool) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE tasks SET completed = $3, updated_at = now()
		 WHERE id = $1 AND user_id = $2
		 RETURNING `+taskColumns,
		taskID, ownerID, completed)
	return scanTask(row)
}

// Delete removes the owner's task. ErrNotFound if nothing was deleted.
func (r *TaskRepository) Delete(ctx context.Context, ownerID string, taskID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Completed,
		&t.DueDate,
		&t.Priority,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
