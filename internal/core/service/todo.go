package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	tel "todoapi/internal/core/telemetry"
)

const serviceName = "todo"

type TodoService struct {
	repo      port.TodoRepository
	telemetry port.Telemetry
}

func NewTodoService(repo port.TodoRepository, telemetry port.Telemetry) *TodoService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoService{repo: repo, telemetry: telemetry}
}

func (ts *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, serviceName, "List", nil)
	defer span.End()

	todos, err := ts.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("todo.count", len(todos)))

	return todos, nil
}

func (ts *TodoService) Read(ctx context.Context, id int64) (domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, serviceName, "Read", []attribute.KeyValue{
		attribute.Int64("todo.id", id),
	})
	defer span.End()

	return ts.repo.GetByID(ctx, id)
}

func (ts *TodoService) Create(ctx context.Context, input domain.CreateTodo) (domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, serviceName, "Create", nil)
	defer span.End()

	if input.Body == "" {
		return domain.Todo{}, domain.NewValidationError("body", "body is a required field")
	}

	todo, err := ts.repo.Create(ctx, domain.NewTodo(input, domain.Now()))
	if err != nil {
		return domain.Todo{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "created", "todo", todo.ID, map[string]interface{}{
		"completed":  todo.Completed,
		"created_at": todo.CreatedAt,
	})

	return todo, nil
}

func (ts *TodoService) Update(ctx context.Context, id int64, patch domain.UpdateTodo) (domain.Todo, error) {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, serviceName, "Update", []attribute.KeyValue{
		attribute.Int64("todo.id", id),
	})
	defer span.End()

	if patch.Body != nil && *patch.Body == "" {
		return domain.Todo{}, domain.NewValidationError("body", "body must be at least 1 character in length")
	}

	todo, err := ts.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Todo{}, err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "updated", "todo", todo.ID, map[string]interface{}{
		"body_changed":      patch.Body != nil,
		"completed_changed": patch.Completed != nil,
		"updated_at":        todo.UpdatedAt,
	})

	return todo, nil
}

func (ts *TodoService) Delete(ctx context.Context, id int64) error {
	ctx, span := ts.telemetry.StartServiceSpan(ctx, serviceName, "Delete", []attribute.KeyValue{
		attribute.Int64("todo.id", id),
	})
	defer span.End()

	if err := ts.repo.Delete(ctx, id); err != nil {
		return err
	}

	ts.telemetry.RecordBusinessEvent(ctx, "deleted", "todo", id, nil)

	return nil
}
