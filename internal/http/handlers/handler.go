package handlers

import (
	"context"

	"taskflow/internal/domain"
	"taskflow/internal/repository"
	"taskflow/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskStore is the task persistence surface the handlers need. Every
// read/mutate call takes the owner id so the filter lives in the query.
type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id, ownerID int64) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)
	Update(ctx context.Context, id, ownerID int64, upd domain.TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, id, ownerID int64) (*domain.Task, error)
}

type Handler struct {
	Auth  *service.AuthService
	Tasks TaskStore
}

func NewHandler(db *pgxpool.Pool, auth *service.AuthService) *Handler {
	return &Handler{
		Auth:  auth,
		Tasks: repository.NewTaskRepository(db),
	}
}
