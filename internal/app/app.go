// Package app wires the application together: configuration, logging, the
// step registry, and the load-build-finalize flow that turns a pipeline
// definition into an execution plan.
package app

import (
	"io"
	"log/slog"

	"github.com/weftlabs/weft/internal/registry"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW     io.Writer // plan output
	errW     io.Writer // log output
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
}

// NewApp constructs a fully initialized App with its own isolated logger
// and registry. Pass explicit modules to override the built-in step
// catalog, which tests use to register fixtures.
func NewApp(outW, errW io.Writer, config *Config, modules ...registry.Module) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreSteps
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Step definitions registered.", "count", len(reg.StepNames()), "steps", reg.StepNames())

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		config:   config,
		registry: reg,
	}
}

// Registry returns the application's registry, primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
