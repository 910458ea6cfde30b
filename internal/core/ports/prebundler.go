package ports

import (
	"context"

	"go.trai.ch/prebundle/internal/core/domain"
)

// Prebundler serves registered entries as pre-bundled modules.
//
//go:generate mockgen -source=prebundler.go -destination=mocks/mock_prebundler.go -package=mocks
type Prebundler interface {
	// Load returns the bundle for the module id, or nil when id is not a registered entry.
	Load(ctx context.Context, id string) (*domain.Cache, error)
	// HandleFileChange invalidates every entry that bundled file and returns the affected modules.
	HandleFileChange(file string, graph ModuleGraph) []*domain.ModuleNode
	// Registry returns the registry of the running session, or nil when not started.
	Registry() *domain.Registry
}
