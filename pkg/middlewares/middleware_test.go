package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/pkg/logger"
	"todoapi/pkg/middlewares"
	"todoapi/pkg/tracing"
)

func newRouter(t *testing.T) (*gin.Engine, *prometheus.Registry) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := prometheus.NewRegistry()
	metrics := tracing.NewAppMetrics(registry)

	router := gin.New()
	middlewares.SetupGinMiddleware(router, "todoapi-test", metrics, logger.NewNop())

	router.GET("/todos/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	return router, registry
}

func TestSetupGinMiddleware(t *testing.T) {
	t.Run("should record requests under the route pattern", func(t *testing.T) {
		router, registry := newRouter(t)

		for _, id := range []string{"1", "2"} {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos/"+id, nil))
			require.Equal(t, http.StatusNoContent, w.Code)
		}

		expected := `
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{method="GET",path="/todos/:id",status="204"} 2
`
		assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "http_requests_total"))
	})

	t.Run("should recover from panics with a 500", func(t *testing.T) {
		router, registry := newRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		expected := `
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{method="GET",path="/panic",status="500"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "http_requests_total"))
	})

	t.Run("should label unmatched routes", func(t *testing.T) {
		router, registry := newRouter(t)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)

		expected := `
# HELP http_requests_total Total number of HTTP requests
# TYPE http_requests_total counter
http_requests_total{method="GET",path="unmatched",status="404"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "http_requests_total"))
	})
}
