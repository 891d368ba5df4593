// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/brisk/internal/adapters/artifacts"
	_ "go.trai.ch/brisk/internal/adapters/config"
	_ "go.trai.ch/brisk/internal/adapters/esbuild"
	_ "go.trai.ch/brisk/internal/adapters/logger"
	_ "go.trai.ch/brisk/internal/adapters/shell"
	_ "go.trai.ch/brisk/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/brisk/internal/app"
)
