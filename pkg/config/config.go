package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const EnvironmentProduction = "production"

// AppConfig is read from unprefixed environment variables: BIND_ADDR maps to
// the "bind_addr" key and so on. A .env file in the working directory is
// loaded first when present.
type AppConfig struct {
	Environment string `koanf:"app_env" validate:"required"`
	ServiceName string `koanf:"service_name" validate:"required"`

	BindAddr        string        `koanf:"bind_addr" validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	DatabaseURL     string        `koanf:"database_url" validate:"required"`
	MaxOpenConns    int           `koanf:"db_max_open_conns" validate:"gte=1"`
	MaxIdleConns    int           `koanf:"db_max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `koanf:"db_conn_max_lifetime" validate:"gte=0"`

	LogLevel   string `koanf:"log_level" validate:"oneof=debug info warn error"`
	DBLogLevel string `koanf:"db_log_level" validate:"oneof=off trace debug info error"`

	OTLPEndpoint string `koanf:"otlp_endpoint"`
	MetricsAddr  string `koanf:"metrics_addr"`
	LokiURL      string `koanf:"loki_url" validate:"omitempty,url"`
}

var knownKeys = map[string]struct{}{}

func init() {
	for _, key := range []string{
		"app_env", "service_name", "bind_addr", "read_timeout", "write_timeout",
		"shutdown_timeout", "database_url", "db_max_open_conns", "db_max_idle_conns",
		"db_conn_max_lifetime", "log_level", "db_log_level", "otlp_endpoint",
		"metrics_addr", "loki_url",
	} {
		knownKeys[key] = struct{}{}
	}
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment:     "development",
		ServiceName:     "todoapi",
		BindAddr:        "0.0.0.0:3000",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		DatabaseURL:     "sqlite:db.sqlite",
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		LogLevel:        "info",
		DBLogLevel:      "info",
	}
}

// Load overlays the environment on top of GetDefaultConfig and validates the result.
func Load() (*AppConfig, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if _, ok := knownKeys[key]; !ok {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := GetDefaultConfig()

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.DBLogLevel = strings.ToLower(cfg.DBLogLevel)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}
