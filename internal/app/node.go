package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/prebundle/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/prebundle/internal/adapters/devserver" //nolint:depguard // Wired in app layer
	"go.trai.ch/prebundle/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/prebundle/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/prebundle/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/prebundle/internal/core/ports"
	"go.trai.ch/prebundle/internal/engine/prebundler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			prebundler.NodeID,
			watcher.NodeID,
			devserver.GraphNodeID,
			metrics.RecorderNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	pb, err := graft.Dep[*prebundler.Prebundler](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	graph, err := graft.Dep[*devserver.ModuleGraph](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[*metrics.Recorder](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, pb, w, graph, recorder, log), nil
}
