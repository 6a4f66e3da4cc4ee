package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/denv/internal/adapters/logger"
	"go.trai.ch/denv/internal/adapters/telemetry"
	"go.trai.ch/denv/internal/adapters/watcher"
	"go.trai.ch/denv/internal/core/ports"
	"go.trai.ch/denv/internal/engine/cache"
)

// NodeID is the unique identifier for the application Graft node.
const NodeID graft.ID = "app"

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cache.NodeID, watcher.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			entryCache, err := graft.Dep[ports.EntryCache](ctx)
			if err != nil {
				return nil, err
			}
			dirWatcher, err := graft.Dep[ports.DirWatcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			telemetry.Install(log)

			return &Components{
				App:    New(entryCache, dirWatcher, log),
				Logger: log,
			}, nil
		},
	})
}
