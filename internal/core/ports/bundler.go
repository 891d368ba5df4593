package ports

import (
	"context"

	"go.trai.ch/brisk/internal/core/domain"
)

// BeforeBuildHook runs once per build attempt, before the engine compiles.
//
//go:generate go run go.uber.org/mock/mockgen -source=bundler.go -destination=mocks/mock_bundler.go -package=mocks
type BeforeBuildHook interface {
	// BeforeBuild prepares state for the upcoming compile. A returned error
	// is reported by the engine as a build error.
	BeforeBuild(ctx context.Context, cfg *domain.BuildConfiguration) error
}

// AfterBuildHook runs once per completed build attempt, successful or not.
type AfterBuildHook interface {
	// AfterBuild receives the error count of the build that just finished.
	AfterBuild(ctx context.Context, errorCount int)
}

// BundleOptions configures a bundling context.
type BundleOptions struct {
	// Config is handed to every BeforeBuild hook.
	Config *domain.BuildConfiguration

	EntryPoints   []string
	AbsWorkingDir string
	OutDir        string
	OutBase       string // mirrored below OutDir
	Format        domain.Format
	Sourcemap     bool
	Define        map[string]string
	DropLabels    []string
	Tsconfig      string

	// WatchDir is the directory observed by BundleContext.Watch.
	WatchDir    string
	// WatchIgnore lists directories below WatchDir that are never observed.
	WatchIgnore []string
	// WatchPaths lists files and directories whose changes always trigger a
	// rebuild. Other changes trigger one only when they touch an input of
	// the last successful build.
	WatchPaths  []string

	// Quiet limits the engine's own diagnostics to errors.
	Quiet bool

	BeforeBuild []BeforeBuildHook
	AfterBuild  []AfterBuildHook
}

// BundleContext is an open incremental bundling session.
type BundleContext interface {
	// Rebuild runs one build, invoking the hooks around it.
	Rebuild(ctx context.Context) (domain.BuildResult, error)
	// Watch rebuilds on relevant file changes below WatchDir until ctx is cancelled.
	Watch(ctx context.Context) error
	// Dispose releases the engine resources. The context is unusable afterwards.
	Dispose()
}

// Bundler opens bundling contexts on the incremental bundling engine.
type Bundler interface {
	// Context validates opts and opens a new bundling context.
	Context(ctx context.Context, opts BundleOptions) (BundleContext, error)
}
