package ports

import "go.trai.ch/prebundle/internal/core/domain"

// ConfigLoader defines the interface for loading the prebundle configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path.
	// An empty path means "discover prebundle.yaml starting at cwd".
	Load(cwd, path string) (*domain.Config, error)

	// DiscoverConfig walks up from cwd to find the nearest prebundle.yaml.
	DiscoverConfig(cwd string) (string, error)
}
