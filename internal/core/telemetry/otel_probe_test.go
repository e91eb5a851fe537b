package telemetry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"todoapi/internal/core/domain"
	"todoapi/pkg/logger"
	"todoapi/pkg/tracing"
)

func TestOTelProbe_RecordRepositoryOperation(t *testing.T) {
	registry := prometheus.NewRegistry()
	probe := NewOTelProbe("todoapi-test", logger.NewNop(), tracing.NewAppMetrics(registry))
	ctx := context.Background()

	ctx, span := probe.StartRepositorySpan(ctx, "GetByID", "todo", nil)
	probe.RecordRepositoryOperation(ctx, "GetByID", "todo", time.Millisecond, nil)
	probe.RecordRepositoryOperation(ctx, "GetByID", "todo", time.Millisecond, domain.NotFound(1))
	probe.RecordRepositoryOperation(ctx, "GetByID", "todo", time.Millisecond, domain.NewStoreError("todo.get", errors.New("disk full")))
	span.End()

	expected := `
# HELP database_operations_total Total number of database operations
# TYPE database_operations_total counter
database_operations_total{operation="GetByID",outcome="error",table="todo"} 1
database_operations_total{operation="GetByID",outcome="not_found",table="todo"} 1
database_operations_total{operation="GetByID",outcome="ok",table="todo"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "database_operations_total"))
}

func TestOTelProbe_NilMetrics(t *testing.T) {
	probe := NewOTelProbe("todoapi-test", logger.NewNop(), nil)

	assert.NotPanics(t, func() {
		probe.RecordRepositoryOperation(context.Background(), "List", "todo", time.Millisecond, nil)
		probe.RecordBusinessEvent(context.Background(), "created", "todo", 1, nil)
	})
}

func TestNoOpProbe_SpansAreDetached(t *testing.T) {
	probe := NewNoOpProbe()

	ctx, span := probe.StartServiceSpan(context.Background(), "todo", "List", nil)

	assert.False(t, span.SpanContext().IsValid())
	assert.NotNil(t, ctx)
	span.End()
}
