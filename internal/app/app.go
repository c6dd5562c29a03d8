package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/flowbricks/internal/boundary"
	"github.com/vk/flowbricks/internal/catalog"
	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/metrics"
	"github.com/vk/flowbricks/internal/resolver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	cache    *catalog.Cache
	analyzer *boundary.Analyzer
	resolver *resolver.Resolver

	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	httpServer *http.Server
}

// NewApp builds an App logging to outW. source may be nil when only region
// analysis is needed; catalog operations then fail with ErrNoCatalog.
func NewApp(outW io.Writer, cfg *Config, source catalog.Source) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := prometheus.NewRegistry()
	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		analyzer: boundary.New(),
		resolver: resolver.New(),
		registry: reg,
		metrics:  metrics.New(reg),
	}
	if source != nil {
		a.cache = catalog.NewCache(source, cfg.CacheTTL, nil)
		a.cache.OnReload = a.metrics.ObserveCatalogReload
	}
	return a
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Metrics returns the application's collectors. This is primarily for testing.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// Context attaches the application's logger to ctx.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Catalog returns the current catalog snapshot.
func (a *App) Catalog(ctx context.Context) (*catalog.Index, error) {
	if a.cache == nil {
		return nil, ErrNoCatalog
	}
	return a.cache.Index(a.Context(ctx))
}
