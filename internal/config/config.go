package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBDir    string     `env:"DB_DIR" envDefault:"data"`
	DBName   string     `env:"DB_NAME" envDefault:"cluequiz.db"`
	Storage  string     `env:"STORAGE" envDefault:"sqlite"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR"`

	// ContentURL is the base of a remote item source tried before the
	// bundled pools. Empty means bundled content only.
	ContentURL      string        `env:"CONTENT_URL"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	MaxDrawAttempts int           `env:"MAX_DRAW_ATTEMPTS" envDefault:"5"`
	PublicURL       string        `env:"PUBLIC_URL"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageSQLite, StorageMemory:
	default:
		return fmt.Errorf("STORAGE must be %q or %q, got %q", StorageSQLite, StorageMemory, c.Storage)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	if c.MaxDrawAttempts < 1 {
		return fmt.Errorf("MAX_DRAW_ATTEMPTS must be at least 1, got %d", c.MaxDrawAttempts)
	}
	return nil
}
