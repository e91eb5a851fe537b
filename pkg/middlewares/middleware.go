package middlewares

import (
	"strconv"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	"todoapi/pkg/logger"
	. "todoapi/pkg/tracing"
)

func MetricsMiddleware(metrics *AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		AddHTTPAttributes(trace.SpanFromContext(c.Request.Context()), c.Request.Method, route, status)

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			route,
			strconv.Itoa(status),
			duration,
		)
	}
}

// SetupGinMiddleware installs the router middleware. Metrics are skipped when
// metrics is nil. Recovery runs innermost so a recovered panic is still logged
// and counted as a 500.
func SetupGinMiddleware(router *gin.Engine, serviceName string, metrics *AppMetrics, log *logger.Logger) {
	router.Use(otelgin.Middleware(serviceName))

	router.Use(LoggingMiddleware(log))

	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
	}

	router.Use(ginzap.RecoveryWithZap(log.Zap(), true))
}
