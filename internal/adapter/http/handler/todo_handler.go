package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	. "todoapi/internal/adapter/http/helper"
	. "todoapi/internal/adapter/http/validation"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/pkg/logger"
	. "todoapi/pkg/tracing"
)

type TodoHandler struct {
	svc          port.TodoService
	Logger       *logger.Logger
	exposeErrors bool
}

// NewTodoHandler builds the todo endpoints. exposeErrors controls whether 500
// envelopes carry the underlying cause.
func NewTodoHandler(svc port.TodoService, log *logger.Logger, exposeErrors bool) *TodoHandler {
	if log == nil {
		log = logger.NewNop()
	}

	return &TodoHandler{
		svc:          svc,
		Logger:       log,
		exposeErrors: exposeErrors,
	}
}

func (t *TodoHandler) List(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.List", []attribute.KeyValue{
		attribute.String("handler.operation", "List"),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
	defer span.End()

	todos, err := t.svc.List(ctx)
	if err != nil {
		AddSpanError(span, err)
		t.Logger.Logger.Ctx(ctx).Error("Failed to list todos", zap.Error(err))

		SendInternalError(c, err, t.exposeErrors)
		return
	}

	span.SetAttributes(attribute.Int("todo.count", len(todos)))

	SendList(c, todos)
}

func (t *TodoHandler) Read(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Read", []attribute.KeyValue{
		attribute.String("handler.operation", "Read"),
		attribute.Int64("todo.id", id),
	})
	defer span.End()

	todo, err := t.svc.Read(ctx, id)
	if err != nil {
		t.fail(c, span, id, "Failed to read todo", err)
		return
	}

	SendSuccess(c, todo)
}

func (t *TodoHandler) Create(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Create", []attribute.KeyValue{
		attribute.String("handler.operation", "Create"),
	})
	defer span.End()

	var input domain.CreateTodo

	if !bindJSON(c, &input) {
		return
	}

	todo, err := t.svc.Create(ctx, input)
	if err != nil {
		t.fail(c, span, 0, "Failed to create todo", err)
		return
	}

	span.SetAttributes(attribute.Int64("todo.id", todo.ID))

	SendSuccess(c, todo)
}

func (t *TodoHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Update", []attribute.KeyValue{
		attribute.String("handler.operation", "Update"),
		attribute.Int64("todo.id", id),
	})
	defer span.End()

	var patch domain.UpdateTodo

	if !bindJSON(c, &patch) {
		return
	}

	todo, err := t.svc.Update(ctx, id, patch)
	if err != nil {
		t.fail(c, span, id, "Failed to update todo", err)
		return
	}

	SendSuccess(c, todo)
}

func (t *TodoHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ctx, span := CreateChildSpan(c.Request.Context(), "handler.todo.Delete", []attribute.KeyValue{
		attribute.String("handler.operation", "Delete"),
		attribute.Int64("todo.id", id),
	})
	defer span.End()

	if err := t.svc.Delete(ctx, id); err != nil {
		t.fail(c, span, id, "Failed to delete todo", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// fail records a failed call on the span and writes its envelope. Client
// errors are not logged here.
func (t *TodoHandler) fail(c *gin.Context, span trace.Span, id int64, msg string, err error) {
	var validationErr *domain.ValidationError

	if !domain.IsNotFound(err) && !errors.As(err, &validationErr) {
		AddSpanError(span, err)
		t.Logger.Logger.Ctx(trace.ContextWithSpan(c.Request.Context(), span)).Error(msg,
			zap.Int64("todo_id", id),
			zap.Error(err),
		)
	}

	SendError(c, id, err, t.exposeErrors)
}

// bindJSON decodes and validates the request body into dst. On failure it
// writes the 400 envelope and returns false.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		SendFail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}

	if err := Validator.Struct(dst); err != nil {
		SendFail(c, http.StatusBadRequest, FormatValidationErrors(err))
		return false
	}

	return true
}

// parseID reads the :id path parameter. On failure it writes the 400 envelope
// and returns false.
func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		SendFail(c, http.StatusBadRequest, "invalid todo id: "+raw)
		return 0, false
	}

	return id, true
}
