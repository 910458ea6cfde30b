package prebundler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prebundle/internal/adapters/bundler"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prebundle/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prebundle/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prebundle/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/prebundle/internal/core/ports"
)

// NodeID is the unique identifier for the prebundler Graft node.
const NodeID graft.ID = "engine.prebundler"

func init() {
	graft.Register(graft.Node[*Prebundler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			bundler.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
		},
		Run: func(ctx context.Context) (*Prebundler, error) {
			resolver, err := graft.Dep[ports.BundlerResolver](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			recorder, err := graft.Dep[ports.Metrics](ctx)
			if err != nil {
				return nil, err
			}

			return New(resolver, log, tracer, recorder), nil
		},
	})
}
