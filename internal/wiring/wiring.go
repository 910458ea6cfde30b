// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/prebundle/internal/adapters/bundler"
	_ "go.trai.ch/prebundle/internal/adapters/config"
	_ "go.trai.ch/prebundle/internal/adapters/devserver"
	_ "go.trai.ch/prebundle/internal/adapters/logger"
	_ "go.trai.ch/prebundle/internal/adapters/metrics"
	_ "go.trai.ch/prebundle/internal/adapters/telemetry"
	_ "go.trai.ch/prebundle/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/prebundle/internal/app"
	_ "go.trai.ch/prebundle/internal/engine/prebundler"
)
