package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todoapi/pkg/logger"
	"todoapi/pkg/tracing"
)

// LoggingMiddleware writes one access-log line per request, at warn level for
// 4xx and error level for 5xx. Errors the handler attached to the context are
// included.
func LoggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		if traceID := tracing.GetTraceID(c.Request.Context()); traceID != "" {
			c.Header("X-Trace-Id", traceID)
		}

		c.Next()

		latency := time.Since(start)

		if raw != "" {
			path = path + "?" + raw
		}

		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("route", c.FullPath()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.ErrorWithTrace(c.Request.Context(), "HTTP Request", fields...)
		case status >= 400:
			log.WarnWithTrace(c.Request.Context(), "HTTP Request", fields...)
		default:
			log.InfoWithTrace(c.Request.Context(), "HTTP Request", fields...)
		}
	}
}
