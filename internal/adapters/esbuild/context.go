package esbuild

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/brisk/internal/adapters/watcher"
	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/brisk/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// errDisposed is returned when a disposed context is used.
var errDisposed = zerr.New("bundling context already disposed")

// bundleContext implements ports.BundleContext.
type bundleContext struct {
	opts       ports.BundleOptions
	logger     ports.Logger
	newWatcher ports.WatcherFactory
	window     time.Duration

	// mu serializes rebuilds so hook invocations never interleave.
	mu       sync.Mutex
	engine   api.BuildContext
	disposed bool
	// runCtx is the context of the rebuild in progress, handed to the hooks.
	runCtx context.Context

	inputsMu sync.Mutex
	// inputs holds the absolute paths read by the last build. It is nil
	// before the first build and after a failed one.
	inputs map[string]struct{}
}

// Rebuild runs one incremental build.
func (c *bundleContext) Rebuild(ctx context.Context) (domain.BuildResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return domain.BuildResult{}, errDisposed
	}
	if err := ctx.Err(); err != nil {
		return domain.BuildResult{}, err
	}

	c.runCtx = ctx
	result := c.engine.Rebuild()
	c.recordInputs(result)

	return domain.BuildResult{
		Errors:   len(result.Errors),
		Warnings: len(result.Warnings),
	}, nil
}

// Watch rebuilds after every relevant content change below WatchDir until ctx is cancelled.
func (c *bundleContext) Watch(ctx context.Context) error {
	w, err := c.newWatcher()
	if err != nil {
		return errors.Join(domain.ErrWatchFailed, zerr.Wrap(err, "create watcher"))
	}
	if err := w.Start(ctx, c.opts.WatchDir, c.opts.WatchIgnore...); err != nil {
		_ = w.Stop()
		return errors.Join(domain.ErrWatchFailed, zerr.With(zerr.Wrap(err, "start watcher"), "dir", c.opts.WatchDir))
	}

	filter := watcher.NewChangeFilter()
	filter.Prime(c.opts.WatchDir, c.opts.WatchIgnore...)

	// A pending trigger already covers later changes since esbuild rereads the tree.
	triggers := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(c.window, func(paths []string) {
		select {
		case triggers <- paths:
		default:
		}
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range w.Events() {
			if filter.Changed(event) && c.relevant(event.Path) {
				debouncer.Add(event.Path)
			}
		}
		if gctx.Err() == nil {
			return zerr.Wrap(domain.ErrWatchFailed, "watcher stopped unexpectedly")
		}
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case paths := <-triggers:
				c.logger.Info(fmt.Sprintf("[watch] %d file(s) changed, rebuilding", len(paths)))
				if _, err := c.Rebuild(gctx); err != nil && gctx.Err() == nil {
					return err
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()
		debouncer.Stop()
		return w.Stop()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// relevant reports whether a change at path can affect the next build.
func (c *bundleContext) relevant(path string) bool {
	for _, p := range c.opts.WatchPaths {
		if watcher.Within(path, p) || watcher.Within(p, path) {
			return true
		}
	}

	c.inputsMu.Lock()
	defer c.inputsMu.Unlock()

	if c.inputs == nil {
		return true
	}
	if _, ok := c.inputs[path]; ok {
		return true
	}
	// A removed or renamed directory may hold inputs.
	for input := range c.inputs {
		if watcher.Within(input, path) {
			return true
		}
	}
	return false
}

// metafile is the subset of esbuild's metafile read after each build.
type metafile struct {
	Inputs map[string]json.RawMessage `json:"inputs"`
}

func (c *bundleContext) recordInputs(result api.BuildResult) {
	var inputs map[string]struct{}
	if len(result.Errors) == 0 {
		inputs = parseInputs(c.opts.AbsWorkingDir, result.Metafile)
	}

	c.inputsMu.Lock()
	c.inputs = inputs
	c.inputsMu.Unlock()
}

func parseInputs(workDir, raw string) map[string]struct{} {
	var meta metafile
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil
	}

	inputs := make(map[string]struct{}, len(meta.Inputs))
	for rel := range meta.Inputs {
		inputs[filepath.Join(workDir, filepath.FromSlash(rel))] = struct{}{}
	}
	return inputs
}

// Dispose releases the esbuild context. It is safe to call more than once.
func (c *bundleContext) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return
	}
	c.disposed = true
	c.engine.Dispose()
}
