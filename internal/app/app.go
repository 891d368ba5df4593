// Package app implements the application layer for brisk.
package app

import (
	"context"
	"log/slog"

	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/brisk/internal/core/ports"
	"go.trai.ch/brisk/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	resolver  ports.ConfigResolver
	bundler   ports.Bundler
	artifacts ports.ArtifactWriter
	runner    ports.ProcessRunner
	logger    ports.Logger
	orchOpts  []orchestrator.Option
}

// Components contains the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

// levelSetter is implemented by loggers whose verbosity can change at runtime.
type levelSetter interface {
	SetLevel(level slog.Level)
}

// New creates a new App instance.
func New(
	resolver ports.ConfigResolver,
	bundler ports.Bundler,
	artifacts ports.ArtifactWriter,
	runner ports.ProcessRunner,
	logger ports.Logger,
	opts ...orchestrator.Option,
) *App {
	return &App{
		resolver:  resolver,
		bundler:   bundler,
		artifacts: artifacts,
		runner:    runner,
		logger:    logger,
		orchOpts:  opts,
	}
}

// Build resolves the configuration for opts and runs the build.
// In watch mode it returns once ctx is cancelled.
func (a *App) Build(ctx context.Context, opts domain.BuildOptions) error {
	// 1. Resolve the configuration
	cfg, err := a.resolver.Resolve(ctx, opts)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve configuration")
	}

	// 2. Silence warnings when requested
	if cfg.SuppressWarnings {
		if ls, ok := a.logger.(levelSetter); ok {
			ls.SetLevel(slog.LevelError)
		}
	}

	// 3. Run the build
	orch := orchestrator.New(a.bundler, a.artifacts, a.runner, a.logger, a.orchOpts...)
	return orch.Run(ctx, cfg)
}
