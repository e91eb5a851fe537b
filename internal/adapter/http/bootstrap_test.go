package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "todoapi/internal/adapter/http"
	"todoapi/internal/core/telemetry"
	"todoapi/pkg/config"
	"todoapi/pkg/logger"
	. "todoapi/pkg/test"
	"todoapi/pkg/tracing"
)

func TestNewServer(t *testing.T) {
	db := InitTestDB()
	defer db.Close()

	cfg := config.GetDefaultConfig()
	cfg.BindAddr = "127.0.0.1:0"

	registry := prometheus.NewRegistry()
	metrics := tracing.NewAppMetrics(registry)
	log := logger.NewNop()
	probe := telemetry.NewOTelProbe(cfg.ServiceName, log, metrics)

	srv := httpadapter.NewServer(db, metrics, log, probe, cfg)

	t.Run("should apply the configured address and timeouts", func(t *testing.T) {
		assert.Equal(t, "127.0.0.1:0", srv.Addr)
		assert.Equal(t, cfg.ReadTimeout, srv.ReadTimeout)
		assert.Equal(t, cfg.WriteTimeout, srv.WriteTimeout)
	})

	t.Run("should serve the full route table", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"body":"buy milk"}`))
		req.Header.Set("Content-Type", "application/json")
		srv.Handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should record repository outcomes and business events", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos/987654", nil))
		require.Equal(t, http.StatusNotFound, w.Code)

		expected := `
# HELP todo_operations_total Total number of successful todo mutations
# TYPE todo_operations_total counter
todo_operations_total{operation="created"} 1
`
		assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "todo_operations_total"))

		count, err := testutil.GatherAndCount(registry, "database_operations_total")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, 2)
	})
}

func TestStartServer_StopsOnCancel(t *testing.T) {
	db := InitTestDB()
	defer db.Close()

	cfg := config.GetDefaultConfig()
	cfg.BindAddr = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second

	log := logger.NewNop()
	srv := httpadapter.NewServer(db, nil, log, nil, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- httpadapter.StartServer(ctx, srv, log, cfg)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}
