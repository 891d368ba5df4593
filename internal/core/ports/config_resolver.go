package ports

import (
	"context"

	"go.trai.ch/brisk/internal/core/domain"
)

// ConfigResolver turns raw command line input into a validated build configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_resolver.go -destination=mocks/mock_config_resolver.go -package=mocks
type ConfigResolver interface {
	// Resolve merges CLI options, the optional user config file and environment
	// overrides. It fails before touching the file system when the input is invalid.
	Resolve(ctx context.Context, opts domain.BuildOptions) (*domain.BuildConfiguration, error)
}
