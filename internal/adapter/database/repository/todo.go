package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"todoapi/internal/adapter/database"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	tel "todoapi/internal/core/telemetry"
)

const (
	todosTable   = "todos"
	todoEntity   = "todo"
	todoColumns  = "id, body, completed, created_at, updated_at"
	returningAll = "RETURNING " + todoColumns
)

type TodoRepository struct {
	db        *database.DB
	telemetry port.Telemetry
}

func NewTodoRepository(db *database.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoRepository{
		db:        db,
		telemetry: telemetry,
	}
}

// operation is one traced repository call.
type operation struct {
	ctx       context.Context
	span      trace.Span
	name      string
	startTime time.Time
	telemetry port.Telemetry
}

func (tr *TodoRepository) start(ctx context.Context, name, statement string, attrs ...attribute.KeyValue) *operation {
	attrs = append([]attribute.KeyValue{
		attribute.String("db.system", string(tr.db.Dialect)),
		attribute.String("db.table", todosTable),
		attribute.String("db.operation", statement),
	}, attrs...)

	ctx, span := tr.telemetry.StartRepositorySpan(ctx, name, todoEntity, attrs)

	return &operation{
		ctx:       ctx,
		span:      span,
		name:      name,
		startTime: time.Now(),
		telemetry: tr.telemetry,
	}
}

func (op *operation) query(query string, args []interface{}) {
	op.telemetry.RecordRepositoryQuery(op.ctx, op.name, todoEntity, query, args)
}

// finish records the outcome and ends the span. It returns err so callers can
// write `return op.finish(err)`.
func (op *operation) finish(err error) error {
	op.telemetry.RecordRepositoryOperation(op.ctx, op.name, todoEntity, time.Since(op.startTime), err)
	op.span.End()

	return err
}

func (tr *TodoRepository) List(ctx context.Context) ([]domain.Todo, error) {
	op := tr.start(ctx, "List", "SELECT")

	query, args, err := tr.db.QueryBuilder.Select(todoColumns).
		From(todosTable).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, op.finish(domain.NewStoreError("todo.list", err))
	}

	op.query(query, args)

	rows, err := tr.db.QueryContext(op.ctx, query, args...)
	if err != nil {
		return nil, op.finish(domain.NewStoreError("todo.list", err))
	}
	defer rows.Close()

	todos := make([]domain.Todo, 0)

	for rows.Next() {
		todo, err := database.ScanTodo(rows)
		if err != nil {
			return nil, op.finish(domain.NewStoreError("todo.list", err))
		}

		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, op.finish(domain.NewStoreError("todo.list", err))
	}

	op.span.SetAttributes(attribute.Int("db.rows_returned", len(todos)))

	return todos, op.finish(nil)
}

func (tr *TodoRepository) GetByID(ctx context.Context, id int64) (domain.Todo, error) {
	op := tr.start(ctx, "GetByID", "SELECT", attribute.Int64("todo.id", id))

	query, args, err := tr.db.QueryBuilder.Select(todoColumns).
		From(todosTable).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return domain.Todo{}, op.finish(domain.NewStoreError("todo.get", err))
	}

	op.query(query, args)

	todo, err := database.ScanTodo(tr.db.QueryRowContext(op.ctx, query, args...))
	if err != nil {
		return domain.Todo{}, op.finish(rowError("todo.get", id, err))
	}

	return todo, op.finish(nil)
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	op := tr.start(ctx, "Create", "INSERT")

	query, args, err := tr.db.QueryBuilder.Insert(todosTable).
		SetMap(todo.ToMap()).
		Suffix(returningAll).
		ToSql()

	if err != nil {
		return domain.Todo{}, op.finish(domain.NewStoreError("todo.create", err))
	}

	op.query(query, args)

	saved, err := database.ScanTodo(tr.db.QueryRowContext(op.ctx, query, args...))
	if err != nil {
		return domain.Todo{}, op.finish(domain.NewStoreError("todo.create", err))
	}

	op.span.SetAttributes(attribute.Int64("todo.id", saved.ID))

	return saved, op.finish(nil)
}

// Update sets only the supplied fields plus updated_at. A missing id yields
// domain.ErrTodoNotFound.
func (tr *TodoRepository) Update(ctx context.Context, id int64, patch domain.UpdateTodo) (domain.Todo, error) {
	changes := patch.Changes(domain.Now())

	op := tr.start(ctx, "Update", "UPDATE",
		attribute.Int64("todo.id", id),
		attribute.Int("update.fields_count", len(changes)-1),
	)

	query, args, err := tr.db.QueryBuilder.Update(todosTable).
		SetMap(changes).
		Where(sq.Eq{"id": id}).
		Suffix(returningAll).
		ToSql()

	if err != nil {
		return domain.Todo{}, op.finish(domain.NewStoreError("todo.update", err))
	}

	op.query(query, args)

	updated, err := database.ScanTodo(tr.db.QueryRowContext(op.ctx, query, args...))
	if err != nil {
		return domain.Todo{}, op.finish(rowError("todo.update", id, err))
	}

	return updated, op.finish(nil)
}

// Delete removes the row. Deleting a missing id is not an error.
func (tr *TodoRepository) Delete(ctx context.Context, id int64) error {
	op := tr.start(ctx, "Delete", "DELETE", attribute.Int64("todo.id", id))

	query, args, err := tr.db.QueryBuilder.Delete(todosTable).
		Where(sq.Eq{"id": id}).
		ToSql()

	if err != nil {
		return op.finish(domain.NewStoreError("todo.delete", err))
	}

	op.query(query, args)

	result, err := tr.db.ExecContext(op.ctx, query, args...)
	if err != nil {
		return op.finish(domain.NewStoreError("todo.delete", err))
	}

	if rowsAffected, err := result.RowsAffected(); err == nil {
		op.span.SetAttributes(attribute.Int64("db.rows_affected", rowsAffected))
	}

	return op.finish(nil)
}

func rowError(op string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(id)
	}

	return domain.NewStoreError(op, err)
}
