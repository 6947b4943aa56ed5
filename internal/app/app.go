package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/fnreg/internal/hclhost"
	"github.com/specialistvlad/fnreg/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	table  *registry.Table
	host   *hclhost.Host
}

// NewApp is the constructor for the main application. Modules are registered
// into t, or into a fresh table when t is nil; with no modules given, the core
// modules are used. A module registering a name that is already taken panics.
func NewApp(outW io.Writer, cfg *Config, t *registry.Table, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	if t == nil {
		t = registry.New()
	}
	if len(modules) == 0 {
		modules = coreModules(outW)
	}
	for _, mod := range modules {
		mod.Register(t)
	}
	logger.Debug("All Go modules registered.", "modules", len(modules), "functions", t.Len())

	return &App{
		outW:   outW,
		logger: logger,
		table:  t,
		host:   hclhost.New(t),
	}
}

// Table returns the application's function table. This is primarily for testing.
func (a *App) Table() *registry.Table {
	return a.table
}
