package ports

import (
	"context"

	"go.trai.ch/brisk/internal/core/domain"
)

// ArtifactWriter generates the files the bundling engine reads while compiling.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifacts.go -destination=mocks/mock_artifacts.go -package=mocks
type ArtifactWriter interface {
	// Write regenerates the ambient declaration file and the base project
	// configuration. Identical input always produces identical files.
	Write(ctx context.Context, format domain.Format, defines map[string]string, paths domain.ArtifactPaths) error
}
