package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.BindAddr)
	assert.Equal(t, "sqlite:db.sqlite", cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLifetime)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("BIND_ADDR", "127.0.0.1:8080")
	t.Setenv("DATABASE_URL", "sqlite:/tmp/todos.sqlite")
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("WRITE_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.BindAddr)
	assert.Equal(t, "sqlite:/tmp/todos.sqlite", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.MaxOpenConns)
	assert.Equal(t, 2*time.Second, cfg.WriteTimeout)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("should reject an unknown log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")

		_, err := Load()
		assert.ErrorContains(t, err, "invalid config")
	})

	t.Run("should reject an empty pool", func(t *testing.T) {
		t.Setenv("DB_MAX_OPEN_CONNS", "0")

		_, err := Load()
		assert.Error(t, err)
	})
}
