package bundler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prebundle/internal/core/ports"
)

// NodeID is the unique identifier for the bundler catalog Graft node.
const NodeID graft.ID = "adapter.bundler"

func init() {
	graft.Register(graft.Node[ports.BundlerResolver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BundlerResolver, error) {
			return NewCatalog(), nil
		},
	})
}
