package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/qsnap/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/qsnap/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/qsnap/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/qsnap/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/qsnap/internal/adapters/markdown"  //nolint:depguard // Wired in app layer
	"go.trai.ch/qsnap/internal/adapters/render"    //nolint:depguard // Wired in app layer
	"go.trai.ch/qsnap/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/qsnap/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/qsnap/internal/core/ports"
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
			fs.FinderNodeID,
			fs.StoreNodeID,
			cas.NodeID,
			markdown.NodeID,
			render.NodeID,
			telemetry.TracerNodeID,
			watcher.WatcherNodeID,
			watcher.DigestsNodeID,
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
			return NewComponents(a, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	finder, err := graft.Dep[ports.DocumentFinder](ctx)
	if err != nil {
		return nil, err
	}
	files, err := graft.Dep[ports.FileStore](ctx)
	if err != nil {
		return nil, err
	}
	cache, err := graft.Dep[ports.CacheStore](ctx)
	if err != nil {
		return nil, err
	}
	inventory, err := graft.Dep[ports.LinkInventory](ctx)
	if err != nil {
		return nil, err
	}
	renderers, err := graft.Dep[ports.RendererFactory](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	digests, err := graft.Dep[*watcher.Digests](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	return New(loader, finder, files, cache, inventory, renderers, tracer, w, digests, log), nil
}
