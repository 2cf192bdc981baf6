// Package config loads process configuration from the environment, with an
// optional .env file for local development. Command-line flags override
// these values where the commands expose them.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// LogVersion selects the wire format: 1 legacy text, 2 structured.
	LogVersion int `env:"WOWLOG_VERSION" envDefault:"2"`

	// LoggerName replaces first-person references in legacy logs.
	LoggerName string `env:"WOWLOG_YOU" envDefault:"You"`

	// BaseYear completes timestamps, which carry no year. Zero means the
	// current year.
	BaseYear int `env:"WOWLOG_BASE_YEAR" envDefault:"0"`

	// Extensions is the comma-separated extension set for a pass.
	Extensions []string `env:"WOWLOG_EXTENSIONS" envDefault:"healing,dispels,index" envSeparator:","`

	// HintsPath points at an optional classifier hint file.
	HintsPath string `env:"WOWLOG_HINTS"`

	LogLevel string `env:"WOWLOG_LOG_LEVEL" envDefault:"info"`

	// Hub settings.
	HubListenAddr string `env:"WOWLOG_HUB_LISTEN" envDefault:"127.0.0.1:8787"`
	HubRateLimit  int    `env:"WOWLOG_HUB_RATE_LIMIT" envDefault:"20"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; its absence is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.LogVersion != 1 && cfg.LogVersion != 2 {
		return Config{}, fmt.Errorf("config: WOWLOG_VERSION must be 1 or 2, got %d", cfg.LogVersion)
	}
	return cfg, nil
}
