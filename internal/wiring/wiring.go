// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/qsnap/internal/adapters/cas"
	_ "go.trai.ch/qsnap/internal/adapters/config"
	_ "go.trai.ch/qsnap/internal/adapters/fs"
	_ "go.trai.ch/qsnap/internal/adapters/logger"
	_ "go.trai.ch/qsnap/internal/adapters/markdown"
	_ "go.trai.ch/qsnap/internal/adapters/render"
	_ "go.trai.ch/qsnap/internal/adapters/telemetry"
	_ "go.trai.ch/qsnap/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/qsnap/internal/app"
)
