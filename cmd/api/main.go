package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"todoapi/internal/adapter/database"
	httpadapter "todoapi/internal/adapter/http"
	"todoapi/internal/core/telemetry"
	"todoapi/pkg/config"
	"todoapi/pkg/logger"
	"todoapi/pkg/tracing"
)

const serviceVersion = "1.0.0"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	appLogger, err := logger.New(logger.Options{
		ServiceName: cfg.ServiceName,
		Level:       cfg.LogLevel,
		LokiURL:     cfg.LokiURL,
	})
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer appLogger.Sync()

	zapLogger := appLogger.Zap()

	tel, err := tracing.InitTelemetry(ctx, tracing.TelemetryConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		MetricsAddr:    cfg.MetricsAddr,
	})
	if err != nil {
		zapLogger.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := tel.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	metrics := tracing.NewAppMetrics(tel.PrometheusRegistry)

	go func() {
		if err := tel.ServeMetrics(); err != nil {
			zapLogger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	db, err := database.Open(database.Options{
		URL:             cfg.DatabaseURL,
		ServiceName:     cfg.ServiceName,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		LogLevel:        cfg.DBLogLevel,
	})
	if err != nil {
		zapLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		zapLogger.Fatal("Database unreachable", zap.Error(err))
	}

	if err := metrics.RegisterDBStats(db.DB, cfg.ServiceName); err != nil {
		zapLogger.Fatal("Failed to register database metrics", zap.Error(err))
	}

	if err := database.RunMigrations(db); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	probe := telemetry.NewOTelProbe(cfg.ServiceName, appLogger, metrics)
	srv := httpadapter.NewServer(db, metrics, appLogger, probe, cfg)

	if err := httpadapter.StartServer(ctx, srv, appLogger, cfg); err != nil {
		zapLogger.Fatal("Server failed", zap.Error(err))
	}

	zapLogger.Info("Server stopped")
}
