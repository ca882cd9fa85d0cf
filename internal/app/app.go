package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/cryogeo/internal/config"
	"github.com/vk/cryogeo/internal/ctxlog"
	"github.com/vk/cryogeo/internal/metrics"
	"github.com/vk/cryogeo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   config.Loader
	registry *registry.Registry
	recorder *metrics.PrometheusRecorder
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Configuration files are not read until Run.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "kinds", reg.Len())

	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		registry: reg,
		recorder: metrics.NewPrometheusRecorder(nil),
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Recorder returns the metrics collected by Run.
func (a *App) Recorder() *metrics.PrometheusRecorder {
	return a.recorder
}
