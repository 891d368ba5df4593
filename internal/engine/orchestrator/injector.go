package orchestrator

import (
	"context"

	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/brisk/internal/core/ports"
)

var _ ports.BeforeBuildHook = (*ConfigInjector)(nil)

// ConfigInjector regenerates the build artifacts at the start of every build.
type ConfigInjector struct {
	artifacts ports.ArtifactWriter
}

// NewConfigInjector creates a ConfigInjector writing through artifacts.
func NewConfigInjector(artifacts ports.ArtifactWriter) *ConfigInjector {
	return &ConfigInjector{artifacts: artifacts}
}

// BeforeBuild writes the ambient declarations and the base tsconfig for cfg.
func (i *ConfigInjector) BeforeBuild(ctx context.Context, cfg *domain.BuildConfiguration) error {
	return i.artifacts.Write(ctx, cfg.Format, cfg.Defines, cfg.ArtifactPaths())
}
