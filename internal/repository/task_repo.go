package repository

import (
	"context"
	"errors"

	"taskflow/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (user_id, title, description, completed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		t.UserID, t.Title, t.Description, t.Completed,
	).Scan(&t.ID, &t.CreatedAt)
}

// GetByID returns the task only when it belongs to ownerID. A task that
// exists under another user is reported as ErrNotFound, same as a task
// that does not exist at all.
func (r *TaskRepository) GetByID(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, description, completed, created_at
		 FROM tasks
		 WHERE id = $1 AND user_id = $2`,
		id, ownerID,
	)
	return scanTask(row)
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, title, description, completed, created_at
		 FROM tasks
		 WHERE user_id = $1
		 ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// Update applies only the non-nil fields of upd in a single statement.
// COALESCE keeps the stored value where the bound parameter is NULL, so
// an empty patch is a no-op that still returns the current row.
func (r *TaskRepository) Update(ctx context.Context, id, ownerID int64, upd domain.TaskUpdate) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE tasks
		 SET title       = COALESCE($1, title),
		     description = COALESCE($2, description),
		     completed   = COALESCE($3, completed)
		 WHERE id = $4 AND user_id = $5
		 RETURNING id, user_id, title, description, completed, created_at`,
		upd.Title, upd.Description, upd.Completed, id, ownerID,
	)
	return scanTask(row)
}

// Delete removes the task and returns the deleted snapshot.
func (r *TaskRepository) Delete(ctx context.Context, id, ownerID int64) (*domain.Task, error) {
	row := r.db.QueryRow(ctx,
		`DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, description, completed, created_at`,
		id, ownerID,
	)
	return scanTask(row)
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}
