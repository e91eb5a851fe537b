package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/response"
	"todoapi/internal/core/port"
	"todoapi/pkg/logger"
	. "todoapi/pkg/tracing"
)

type HealthHandler struct {
	checker port.HealthChecker
	Logger  *logger.Logger
}

func NewHealthHandler(checker port.HealthChecker, log *logger.Logger) *HealthHandler {
	if log == nil {
		log = logger.NewNop()
	}

	return &HealthHandler{checker: checker, Logger: log}
}

// Ping reports whether a pooled connection can be checked out and
// round-tripped.
func (h *HealthHandler) Ping(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.health.Ping", nil)
	defer span.End()

	if err := h.checker.Ping(ctx); err != nil {
		AddSpanError(span, err)
		h.Logger.Logger.Ctx(ctx).Error("Health check failed", zap.Error(err))

		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Status:  response.StatusError,
			Message: pingMessage(err),
		})
		return
	}

	c.JSON(http.StatusOK, response.HealthResponse{Status: response.StatusHealthy})
}

func pingMessage(err error) string {
	var healthErr *domain.HealthError
	if !errors.As(err, &healthErr) {
		return "Database error: " + err.Error()
	}

	if healthErr.Acquire {
		return "Pool acquire error: " + healthErr.Err.Error()
	}

	return "Database error: " + healthErr.Err.Error()
}
