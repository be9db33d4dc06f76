package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CatalogPaths []string // extra component manifests: files, directories or patterns

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json", "pretty":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text', 'json' or 'pretty'", cfg.LogFormat)
	}
	for _, p := range cfg.CatalogPaths {
		if p == "" {
			return nil, errors.New("catalog paths must not be empty")
		}
	}
	return &cfg, nil
}
