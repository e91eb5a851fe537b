package database

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel"

	"todoapi/internal/core/domain"
)

type Options struct {
	URL             string
	ServiceName     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// LogLevel is the minimum level of logged statements: trace, debug, info,
	// error, or off.
	LogLevel string
}

// DB is the shared connection pool. It is handed to adapters through their
// constructors.
type DB struct {
	*sql.DB
	Dialect      Dialect
	QueryBuilder *squirrel.StatementBuilderType
	dsn          string
}

// Open builds the pool: driver → otelsql spans → sqldblogger statement logs.
// No connection is made until the first use.
func Open(opts Options) (*DB, error) {
	dialect, dsn, err := ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}

	otelOpts := []otelsql.Option{
		otelsql.WithDBSystem(string(dialect)),
		otelsql.WithDBName(opts.ServiceName),
		otelsql.WithTracerProvider(otel.GetTracerProvider()),
	}

	tracedDB, err := otelsql.Open(dialect.DriverName(), dsn, otelOpts...)
	if err != nil {
		return nil, err
	}

	sqlDB := tracedDB

	if level, ok := statementLogLevel(opts.LogLevel); ok {
		drv := tracedDB.Driver()

		// Only the traced driver is kept; the pool around it is replaced.
		if err := tracedDB.Close(); err != nil {
			return nil, err
		}

		logger := zerolog.New(os.Stdout).With().Timestamp().Str("component", "sql").Logger()

		sqlDB = sqldblogger.OpenDriver(dsn, drv, zerologadapter.New(logger),
			sqldblogger.WithMinimumLevel(level),
		)
		otelsql.ReportDBStatsMetrics(sqlDB, otelOpts...)
	}

	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	queryBuilder := dialect.StatementBuilder()

	return &DB{
		DB:           sqlDB,
		Dialect:      dialect,
		QueryBuilder: &queryBuilder,
		dsn:          dsn,
	}, nil
}

// Ping checks out a dedicated connection, round-trips it and hands it back
// to the pool.
func (db *DB) Ping(ctx context.Context) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return &domain.HealthError{Acquire: true, Err: err}
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		return &domain.HealthError{Err: err}
	}

	return nil
}

func statementLogLevel(level string) (sqldblogger.Level, bool) {
	switch level {
	case "trace":
		return sqldblogger.LevelTrace, true
	case "debug":
		return sqldblogger.LevelDebug, true
	case "info":
		return sqldblogger.LevelInfo, true
	case "error":
		return sqldblogger.LevelError, true
	default:
		return sqldblogger.LevelError, false
	}
}
