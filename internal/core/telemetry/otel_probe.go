package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
	"todoapi/pkg/logger"
	"todoapi/pkg/tracing"
)

// OTelProbe implements port.Telemetry on top of OpenTelemetry, Prometheus and zap.
type OTelProbe struct {
	tracer  trace.Tracer
	logger  *logger.Logger
	metrics *tracing.AppMetrics
}

func NewOTelProbe(serviceName string, logger *logger.Logger, metrics *tracing.AppMetrics) port.Telemetry {
	return &OTelProbe{
		tracer:  otel.Tracer(serviceName),
		logger:  logger,
		metrics: metrics,
	}
}

func (p *OTelProbe) StartRepositorySpan(ctx context.Context, operation string, entity string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("repository.%s.%s", entity, operation)

	standardAttrs := append([]attribute.KeyValue{
		attribute.String("repository.entity", entity),
		attribute.String("repository.operation", operation),
		attribute.String("component", "repository"),
	}, attrs...)

	return p.tracer.Start(ctx, spanName, trace.WithAttributes(standardAttrs...))
}

func (p *OTelProbe) StartServiceSpan(ctx context.Context, service string, operation string, attrs []attribute.KeyValue) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("service.%s.%s", service, operation)

	standardAttrs := append([]attribute.KeyValue{
		attribute.String("service.name", service),
		attribute.String("service.operation", operation),
		attribute.String("component", "service"),
	}, attrs...)

	return p.tracer.Start(ctx, spanName, trace.WithAttributes(standardAttrs...))
}

func (p *OTelProbe) RecordRepositoryOperation(ctx context.Context, operation string, entity string, duration time.Duration, err error) {
	span := trace.SpanFromContext(ctx)

	span.SetAttributes(
		attribute.Int64("operation.duration_ns", duration.Nanoseconds()),
		attribute.Bool("operation.has_error", err != nil),
	)

	outcome := "ok"

	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
	case domain.IsNotFound(err):
		outcome = "not_found"
		span.SetAttributes(attribute.Bool("db.not_found", true))
	default:
		outcome = "error"
		tracing.AddSpanError(span, err)

		p.logger.Logger.Ctx(ctx).Error("Repository operation failed",
			zap.String("operation", operation),
			zap.String("entity", entity),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
	}

	if p.metrics != nil {
		p.metrics.RecordDatabaseOperation(ctx, operation, entity, outcome, duration)
	}
}

func (p *OTelProbe) RecordRepositoryQuery(ctx context.Context, operation string, entity string, query string, args []interface{}) {
	argTypes := make([]string, len(args))
	for i := range args {
		argTypes[i] = fmt.Sprintf("%T", args[i])
	}

	trace.SpanFromContext(ctx).SetAttributes(attribute.String("db.statement", query))

	p.logger.Logger.Ctx(ctx).Debug("Executing repository query",
		zap.String("operation", operation),
		zap.String("entity", entity),
		zap.String("query", query),
		zap.Strings("args_types", argTypes),
	)
}

func (p *OTelProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID int64, metadata map[string]interface{}) {
	trace.SpanFromContext(ctx).AddEvent(fmt.Sprintf("%s.%s", entity, event), trace.WithAttributes(
		attribute.String("event.entity", entity),
		attribute.Int64("event.entity_id", entityID),
	))

	if p.metrics != nil {
		p.metrics.RecordTodoOperation(ctx, event)
	}

	p.logger.InfoWithTrace(ctx, "Business event recorded",
		zap.String("event", event),
		zap.String("entity", entity),
		zap.Int64("entity_id", entityID),
		zap.Any("metadata", metadata),
	)
}
