// Package orchestrator drives one build invocation from entry discovery to disposal.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/brisk/internal/core/ports"
	"go.trai.ch/brisk/internal/engine/supervisor"
	"go.trai.ch/zerr"
)

// Orchestrator runs builds through the bundling engine.
type Orchestrator struct {
	bundler        ports.Bundler
	artifacts      ports.ArtifactWriter
	runner         ports.ProcessRunner
	logger         ports.Logger
	supervisorOpts []supervisor.Option
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithSupervisorOptions passes opts to the supervisor of every run.
func WithSupervisorOptions(opts ...supervisor.Option) Option {
	return func(o *Orchestrator) {
		o.supervisorOpts = append(o.supervisorOpts, opts...)
	}
}

// New creates a new Orchestrator.
func New(
	bundler ports.Bundler,
	artifacts ports.ArtifactWriter,
	runner ports.ProcessRunner,
	logger ports.Logger,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		bundler:   bundler,
		artifacts: artifacts,
		runner:    runner,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run builds cfg once. In watch mode it keeps rebuilding until ctx is cancelled.
// A one-shot build with engine errors returns domain.ErrBuildFailed.
func (o *Orchestrator) Run(ctx context.Context, cfg *domain.BuildConfiguration) error {
	paths := cfg.ArtifactPaths()
	if err := os.MkdirAll(paths.Dir, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrArtifactWriteFailed, zerr.With(zerr.Wrap(err, "create artifact directory"), "path", paths.Dir))
	}

	entries, err := DiscoverEntryPoints(cfg.SourcePath())
	if err != nil {
		return err
	}

	// The engine reads the project config, which extends the generated one,
	// before the first BeforeBuild hook runs.
	injector := NewConfigInjector(o.artifacts)
	if err := injector.BeforeBuild(ctx, cfg); err != nil {
		return err
	}

	sup := supervisor.New(cfg, o.runner, o.logger, o.supervisorOpts...)

	bctx, err := o.bundler.Context(ctx, o.bundleOptions(cfg, entries, injector, sup))
	if err != nil {
		sup.Close()
		return err
	}

	result, err := bctx.Rebuild(ctx)
	if err != nil {
		bctx.Dispose()
		sup.Close()
		return err
	}

	if !cfg.Watching() {
		bctx.Dispose()
		sup.Close()
		if result.Failed() {
			return domain.ErrBuildFailed
		}
		o.logger.Info(fmt.Sprintf("[build] built %d entry point(s) into %s", len(entries), cfg.OutDir))
		return nil
	}

	defer sup.Close()
	defer bctx.Dispose()

	if result.Failed() {
		o.logger.Warn("[watch] initial build failed, waiting for changes")
	}
	o.logger.Info("[watch] watching for changes")

	return bctx.Watch(ctx)
}

func (o *Orchestrator) bundleOptions(
	cfg *domain.BuildConfiguration,
	entries []string,
	injector *ConfigInjector,
	sup *supervisor.Supervisor,
) ports.BundleOptions {
	tsconfig := cfg.TsconfigPath
	if !filepath.IsAbs(tsconfig) {
		tsconfig = filepath.Join(cfg.Root, tsconfig)
	}
	// Imports outside the source dir are picked up through the engine's inputs.
	watchPaths := []string{
		cfg.SourcePath(),
		tsconfig,
		filepath.Join(cfg.Root, "jsconfig.json"),
		filepath.Join(cfg.Root, "package.json"),
	}

	return ports.BundleOptions{
		Config:        cfg,
		EntryPoints:   entries,
		AbsWorkingDir: cfg.Root,
		OutDir:        cfg.OutPath(),
		OutBase:       cfg.SourcePath(),
		Format:        cfg.Format,
		Sourcemap:     cfg.Sourcemap,
		Define:        domain.EngineDefines(cfg),
		DropLabels:    cfg.DropLabels,
		Tsconfig:      tsconfig,
		WatchDir:      cfg.Root,
		WatchIgnore:   []string{cfg.OutPath()},
		WatchPaths:    watchPaths,
		Quiet:         cfg.SuppressWarnings,
		BeforeBuild:   []ports.BeforeBuildHook{injector},
		AfterBuild:    []ports.AfterBuildHook{sup},
	}
}
