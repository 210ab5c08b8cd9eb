// Package config holds the application configuration, loaded from
// TASKMASTER_-prefixed environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/rezkam/taskmaster/internal/env"
)

// Config holds the application configuration.
type Config struct {
	// Server
	HTTPPort string `env:"TASKMASTER_HTTP_PORT" default:"8080"`
	Env      string `env:"TASKMASTER_ENV" default:"dev"` // dev, prod

	// Storage
	DBPath string `env:"TASKMASTER_DB_PATH" default:"./taskmaster.db"`

	// Snapshot archive
	ArchiveType string `env:"TASKMASTER_ARCHIVE_TYPE" default:"fs"` // fs, gcs
	ArchiveDir  string `env:"TASKMASTER_ARCHIVE_DIR" default:"./taskmaster-archives"`
	GCSBucket   string `env:"TASKMASTER_GCS_BUCKET"`

	// Auth
	BcryptCost  int           `env:"TASKMASTER_BCRYPT_COST" default:"10"`
	AuthTimeout time.Duration `env:"TASKMASTER_AUTH_TIMEOUT" default:"5s"` // storage timeout for auth bookkeeping

	// Session maintenance
	SessionMaxIdle       time.Duration `env:"TASKMASTER_SESSION_MAX_IDLE" default:"720h"`
	SessionPruneInterval time.Duration `env:"TASKMASTER_SESSION_PRUNE_INTERVAL" default:"1h"`

	// Observability
	OTelEnabled bool `env:"TASKMASTER_OTEL_ENABLED" default:"false"`
}

// Load parses environment variables into a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.ArchiveType {
	case "fs":
		if c.ArchiveDir == "" {
			return fmt.Errorf("TASKMASTER_ARCHIVE_DIR is required when TASKMASTER_ARCHIVE_TYPE is 'fs'")
		}
	case "gcs":
		if c.GCSBucket == "" {
			return fmt.Errorf("TASKMASTER_GCS_BUCKET is required when TASKMASTER_ARCHIVE_TYPE is 'gcs'")
		}
	default:
		return fmt.Errorf("unknown TASKMASTER_ARCHIVE_TYPE: %s", c.ArchiveType)
	}

	if c.DBPath == "" {
		return fmt.Errorf("TASKMASTER_DB_PATH must not be empty")
	}

	return nil
}
