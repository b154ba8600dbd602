package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the archive services.
// Environment variables are parsed from the SMP_ prefix,
// e.g. SMP_HTTP_PORT, SMP_BOT_TOKEN.
type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP configuration of the storage service.
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage backend: "auto" derives sqlite unless a Postgres DSN is set.
	DBDriver    string `envconfig:"DB_DRIVER" default:"auto"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/saved-messages.db"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`

	// Bot process configuration. MetricsAddr, when set (e.g. ":9091"),
	// exposes Prometheus metrics on that address.
	BotToken    string `envconfig:"BOT_TOKEN" default:""`
	ServiceURL  string `envconfig:"SERVICE_URL" default:"http://127.0.0.1:8080"`
	PollTimeout int    `envconfig:"POLL_TIMEOUT" default:"30"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`
}

// ResolveDefaults derives the DB driver when set to "auto" and validates it.
func (c *Config) ResolveDefaults() error {
	if c.DBDriver == "" || c.DBDriver == "auto" {
		if c.PostgresDSN != "" {
			c.DBDriver = "postgres"
		} else {
			c.DBDriver = "sqlite"
		}
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	if c.DBDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("DB_DRIVER=postgres requires POSTGRES_DSN")
	}
	return nil
}

// New creates a Config by parsing SMP_-prefixed environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("SMP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetHTTPAddr returns the storage service listen address.
func (c *Config) GetHTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }
