package ports

import "go.trai.ch/qsnap/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the configuration from cwd upwards and returns it with defaults applied.
	// A missing configuration file yields the defaults rooted at cwd.
	Load(cwd string) (domain.Config, error)
}
