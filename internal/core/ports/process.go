package ports

import "context"

// Process is a running run-command.
type Process interface {
	// Wait blocks until the process exits and returns its exit error.
	Wait() error
}

// ProcessRunner starts run-commands attached to the standard streams.
//
//go:generate go run go.uber.org/mock/mockgen -source=process.go -destination=mocks/mock_process.go -package=mocks
type ProcessRunner interface {
	// Start launches command in dir. Cancelling ctx terminates the process.
	Start(ctx context.Context, dir, command string) (Process, error)
}
