// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/denv/internal/adapters/config"
	_ "go.trai.ch/denv/internal/adapters/direnv"
	_ "go.trai.ch/denv/internal/adapters/logger"
	_ "go.trai.ch/denv/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/denv/internal/app"
	_ "go.trai.ch/denv/internal/engine/cache"
)
