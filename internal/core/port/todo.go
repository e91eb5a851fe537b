package port

import (
	"context"

	"todoapi/internal/core/domain"
)

type TodoRepository interface {
	List(ctx context.Context) ([]domain.Todo, error)
	GetByID(ctx context.Context, id int64) (domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, id int64, patch domain.UpdateTodo) (domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type TodoService interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Read(ctx context.Context, id int64) (domain.Todo, error)
	Create(ctx context.Context, input domain.CreateTodo) (domain.Todo, error)
	Update(ctx context.Context, id int64, patch domain.UpdateTodo) (domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// HealthChecker checks out one pooled connection and round-trips it.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
