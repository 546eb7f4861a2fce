package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/ledgrid/internal/ctxlog"
	"github.com/specialistvlad/ledgrid/internal/program"
	"github.com/specialistvlad/ledgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer // generated source
	errW     io.Writer // logs and the terminal preview
	logger   *slog.Logger
	registry *registry.Registry
	loader   program.Loader
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// With no modules given, the core modules are registered.
func NewApp(outW, errW io.Writer, cfg *Config, loader program.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = program.NewLoader()
	}

	reg := registry.New(registry.WithFunctionModules(cfg.FunctionModules), registry.WithLogger(logger))
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "function_modules", cfg.FunctionModules)

	if err := reg.ValidateRegistry(ctx); err != nil {
		// A module registered under the wrong key is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		registry: reg,
		loader:   loader,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
