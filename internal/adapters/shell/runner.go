// Package shell starts run-commands through the platform shell.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/brisk/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProcessRunner = (*Runner)(nil)

// WaitDelay is the grace period between the termination signal and SIGKILL.
const WaitDelay = 5 * time.Second

// Runner implements ports.ProcessRunner using os/exec.
// The child shares the standard streams of brisk.
type Runner struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	waitDelay time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput replaces the child's stdout and stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithWaitDelay replaces the termination grace period.
func WithWaitDelay(d time.Duration) Option {
	return func(r *Runner) {
		r.waitDelay = d
	}
}

// NewRunner creates a Runner attached to the process's standard streams.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		waitDelay: WaitDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches command through the shell in dir.
// Cancelling ctx terminates the command gracefully.
func (r *Runner) Start(ctx context.Context, dir, command string) (ports.Process, error) {
	if strings.TrimSpace(command) == "" {
		return nil, errors.Join(domain.ErrCommandExecutionFailed, zerr.New("empty command"))
	}

	name, args := shellCommand(command)
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user provided command
	cmd.Dir = dir
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	cmd.WaitDelay = r.waitDelay
	setGracefulShutdown(cmd)

	if err := cmd.Start(); err != nil {
		return nil, errors.Join(domain.ErrCommandExecutionFailed,
			zerr.With(zerr.Wrap(err, "start command"), "command", command))
	}

	return &process{cmd: cmd}, nil
}

type process struct {
	cmd *exec.Cmd
}

// Wait blocks until the command exits.
func (p *process) Wait() error {
	return p.cmd.Wait()
}
