package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CatalogPath string // hcl manifests, or a .yaml/.json index file
	CatalogDB   string // sqlite catalog; takes precedence over CatalogPath

	LogFormat   string
	LogLevel    string
	WorkerCount int
	MinScore    *float64 // nil keeps the matcher default
	Limit       int
	CacheTTL    time.Duration
	MetricsPort int
}

// NewConfig validates cfg and fills defaults for zero values.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = formatText
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 4
	}

	if cfg.LogFormat != formatText && cfg.LogFormat != formatJSON {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.WorkerCount < 0 {
		return nil, errors.New("WorkerCount cannot be negative")
	}
	if cfg.MinScore != nil && (*cfg.MinScore < 0 || *cfg.MinScore > 1) {
		return nil, fmt.Errorf("MinScore %v is outside [0, 1]", *cfg.MinScore)
	}
	if cfg.Limit < 0 {
		return nil, errors.New("Limit cannot be negative")
	}
	if cfg.CacheTTL < 0 {
		return nil, errors.New("CacheTTL cannot be negative")
	}
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return nil, fmt.Errorf("MetricsPort %d is not a valid port", cfg.MetricsPort)
	}
	return &cfg, nil
}

// HasCatalog reports whether a catalog location is configured.
func (c *Config) HasCatalog() bool {
	return c.CatalogPath != "" || c.CatalogDB != ""
}
