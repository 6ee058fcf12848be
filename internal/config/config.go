// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration. SnapshotDBPath left empty disables
// snapshot persistence.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	HistoryLimit    int           `env:"HISTORY_LIMIT" envDefault:"50"`
	UndoLimit       int           `env:"UNDO_LIMIT" envDefault:"50"`
	SnapshotDBPath  string        `env:"SNAPSHOT_DB_PATH"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
