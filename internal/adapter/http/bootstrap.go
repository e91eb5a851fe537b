package http

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"todoapi/internal/adapter/database"
	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/core/port"
	"todoapi/pkg/config"
	"todoapi/pkg/logger"
	"todoapi/pkg/tracing"
)

// NewServer builds the HTTP server for the configured bind address.
func NewServer(db *database.DB, metrics *tracing.AppMetrics, log *logger.Logger, probe port.Telemetry, cfg *config.AppConfig) *http.Server {
	container := NewContainer(db, log, probe, cfg)

	router := routes.SetupRouter(routes.HandlersConfig{
		TodoHandler:   container.TodoHandler,
		HealthHandler: container.HealthHandler,
	}, metrics, log, cfg)

	return &http.Server{
		Addr:         cfg.BindAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
}

// StartServer serves until ctx is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests within the shutdown timeout.
func StartServer(ctx context.Context, srv *http.Server, log *logger.Logger, cfg *config.AppConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		log.Zap().Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Zap().Info("Server shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
