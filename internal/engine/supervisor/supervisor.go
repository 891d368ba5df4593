// Package supervisor restarts the project's run command after successful watch-mode rebuilds.
package supervisor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/brisk/internal/core/ports"
	"go.trai.ch/zerr"
)

// DebounceDelay is how long a successful rebuild waits before the run command is (re)started.
const DebounceDelay = 300 * time.Millisecond

var _ ports.AfterBuildHook = (*Supervisor)(nil)

// Supervisor owns the watch session of one orchestrator run:
// the first-build flag, at most one pending timer and at most one running process.
type Supervisor struct {
	runner ports.ProcessRunner
	logger ports.Logger
	delay  time.Duration
	rules  []StartRule
	exists func(path string) bool

	watch   bool
	command *string
	dir     string

	// base is the parent of every process context; cancelled by Close.
	base context.Context
	stop context.CancelFunc
	wg   sync.WaitGroup

	mu             sync.Mutex
	closed         bool
	firstBuildDone bool
	generation     uint64
	timer          *time.Timer
	active         *runningProcess
	// exiting is closed once the most recently cancelled process has exited.
	exiting <-chan struct{}
}

type runningProcess struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithDelay replaces DebounceDelay.
func WithDelay(d time.Duration) Option {
	return func(s *Supervisor) {
		s.delay = d
	}
}

// WithStartRules replaces the lock-file lookup and its existence predicate.
func WithStartRules(rules []StartRule, exists func(path string) bool) Option {
	return func(s *Supervisor) {
		s.rules = rules
		s.exists = exists
	}
}

// New creates the supervisor for one run of cfg.
func New(cfg *domain.BuildConfiguration, runner ports.ProcessRunner, logger ports.Logger, opts ...Option) *Supervisor {
	base, stop := context.WithCancel(context.Background())
	s := &Supervisor{
		runner: runner,
		logger: logger,
		delay:  DebounceDelay,
		rules:  DefaultStartRules,
		exists: FileExists,
		watch:  cfg.Watching(),
		dir:    cfg.Root,
		base:   base,
		stop:   stop,
	}
	if cfg.Watch != nil {
		s.command = cfg.Watch.Command
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AfterBuild reacts to a completed build. Only successful builds after the
// first one in watch mode replace the run command, after DebounceDelay.
func (s *Supervisor) AfterBuild(_ context.Context, errorCount int) {
	if !s.watch || errorCount > 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if !s.firstBuildDone {
		s.firstBuildDone = true
		return
	}

	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cancelActive()

	if s.command != nil && *s.command == "" {
		s.logger.Info("[watch] run command disabled, not restarting")
		return
	}

	gen := s.generation
	s.timer = time.AfterFunc(s.delay, func() { s.fire(gen) })
}

// Close stops the pending timer, terminates the running process and waits for it to exit.
func (s *Supervisor) Close() {
	s.mu.Lock()
	s.closed = true
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.cancelActive()
	s.mu.Unlock()

	s.stop()
	s.wg.Wait()
}

// cancelActive cancels the running process and remembers it until it exits. Callers hold s.mu.
func (s *Supervisor) cancelActive() {
	if s.active == nil {
		return
	}
	s.active.cancel()
	s.exiting = s.active.done
	s.active = nil
}

// fire runs when the debounce timer of generation gen expires.
func (s *Supervisor) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	exiting := s.exiting
	s.mu.Unlock()

	command, err := s.resolveCommand()
	if err != nil {
		s.logger.Error(zerr.Wrap(err, "[watch] not restarting"))
		return
	}

	if exiting != nil {
		<-exiting
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.generation {
		return
	}
	if s.exiting == exiting {
		s.exiting = nil
	}

	ctx, cancel := context.WithCancel(s.base)
	proc, err := s.runner.Start(ctx, s.dir, command)
	if err != nil {
		cancel()
		s.logger.Error(zerr.Wrap(err, "[watch] command execution error"))
		return
	}

	rp := &runningProcess{cancel: cancel, done: make(chan struct{})}
	s.active = rp
	s.logger.Info("[watch] running " + command)

	s.wg.Add(1)
	go s.wait(ctx, rp, proc, command)
}

// wait reaps proc and reports failures that were not caused by cancellation.
func (s *Supervisor) wait(ctx context.Context, rp *runningProcess, proc ports.Process, command string) {
	defer s.wg.Done()

	err := proc.Wait()
	cancelled := ctx.Err() != nil
	rp.cancel()

	s.mu.Lock()
	if s.active == rp {
		s.active = nil
	}
	s.mu.Unlock()
	close(rp.done)

	switch {
	case cancelled:
	case err != nil:
		failure := errors.Join(domain.ErrCommandExecutionFailed, zerr.With(zerr.Wrap(err, "run command"), "command", command))
		s.logger.Error(zerr.Wrap(failure, "[watch] command execution error"))
	default:
		s.logger.Info("[watch] " + command + " exited")
	}
}

func (s *Supervisor) resolveCommand() (string, error) {
	if s.command != nil {
		return *s.command, nil
	}
	return DetectStartCommand(s.dir, s.rules, s.exists)
}
