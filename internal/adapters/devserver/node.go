package devserver

import (
	"context"

	"github.com/grindlemire/graft"
)

// GraphNodeID is the unique identifier for the module graph Graft node.
const GraphNodeID graft.ID = "adapter.devserver.graph"

func init() {
	graft.Register(graft.Node[*ModuleGraph]{
		ID:        GraphNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*ModuleGraph, error) {
			return NewModuleGraph(), nil
		},
	})
}
