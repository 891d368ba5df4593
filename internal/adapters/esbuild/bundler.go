// Package esbuild implements the bundling engine port on the esbuild Go API.
package esbuild

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/brisk/internal/adapters/watcher"
	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/brisk/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Bundler = (*Bundler)(nil)

const (
	beforeBuildPlugin = "brisk:before-build"
	afterBuildPlugin  = "brisk:after-build"
)

// Bundler implements ports.Bundler.
type Bundler struct {
	newWatcher ports.WatcherFactory
	logger     ports.Logger
	window     time.Duration
}

// Option configures a Bundler.
type Option func(*Bundler)

// WithDebounceWindow replaces the window used to coalesce file events into one rebuild.
func WithDebounceWindow(d time.Duration) Option {
	return func(b *Bundler) {
		b.window = d
	}
}

// NewBundler creates a Bundler that watches source trees with watchers from newWatcher.
func NewBundler(newWatcher ports.WatcherFactory, logger ports.Logger, opts ...Option) *Bundler {
	b := &Bundler{
		newWatcher: newWatcher,
		logger:     logger,
		window:     watcher.DefaultDebounceWindow,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Context opens an esbuild build context for opts.
// BeforeBuild hooks run in esbuild's OnStart, AfterBuild hooks in its OnEnd.
func (b *Bundler) Context(ctx context.Context, opts ports.BundleOptions) (ports.BundleContext, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bc := &bundleContext{
		opts:       opts,
		logger:     b.logger,
		newWatcher: b.newWatcher,
		window:     b.window,
		runCtx:     ctx,
	}

	engine, cerr := api.Context(bc.buildOptions())
	if cerr != nil {
		return nil, errors.Join(domain.ErrBundlerContextFailed, zerr.New(formatMessages(cerr.Errors)))
	}
	bc.engine = engine

	return bc, nil
}

func (c *bundleContext) buildOptions() api.BuildOptions {
	format := api.FormatESModule
	if c.opts.Format == domain.FormatCJS {
		format = api.FormatCommonJS
	}

	sourcemap := api.SourceMapNone
	if c.opts.Sourcemap {
		sourcemap = api.SourceMapLinked
	}

	logLevel := api.LogLevelWarning
	if c.opts.Quiet {
		logLevel = api.LogLevelError
	}

	return api.BuildOptions{
		EntryPoints:   c.opts.EntryPoints,
		AbsWorkingDir: c.opts.AbsWorkingDir,
		Outdir:        c.opts.OutDir,
		Outbase:       c.opts.OutBase,
		Bundle:        true,
		Packages:      api.PackagesExternal,
		Platform:      api.PlatformNode,
		Target:        api.ES2022,
		Format:        format,
		Sourcemap:     sourcemap,
		Define:        c.opts.Define,
		DropLabels:    c.opts.DropLabels,
		Tsconfig:      c.opts.Tsconfig,
		LogLevel:      logLevel,
		Color:         api.ColorIfTerminal,
		Write:         true,
		Metafile:      true,
		Plugins: []api.Plugin{
			{Name: beforeBuildPlugin, Setup: c.setupBeforeBuild},
			{Name: afterBuildPlugin, Setup: c.setupAfterBuild},
		},
	}
}

func (c *bundleContext) setupBeforeBuild(build api.PluginBuild) {
	build.OnStart(func() (api.OnStartResult, error) {
		for _, hook := range c.opts.BeforeBuild {
			if err := hook.BeforeBuild(c.runCtx, c.opts.Config); err != nil {
				return api.OnStartResult{}, err
			}
		}
		return api.OnStartResult{}, nil
	})
}

func (c *bundleContext) setupAfterBuild(build api.PluginBuild) {
	build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
		for _, hook := range c.opts.AfterBuild {
			hook.AfterBuild(c.runCtx, len(result.Errors))
		}
		return api.OnEndResult{}, nil
	})
}

func formatMessages(msgs []api.Message) string {
	if len(msgs) == 0 {
		return "unknown esbuild error"
	}

	lines := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		line := msg.Text
		if msg.Location != nil {
			line = msg.Location.File + ": " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
