package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/denv/internal/adapters/direnv"
	"go.trai.ch/denv/internal/adapters/logger"
	"go.trai.ch/denv/internal/core/ports"
)

// NodeID is the unique identifier for the entry cache Graft node.
const NodeID graft.ID = "engine.cache"

func init() {
	graft.Register(graft.Node[ports.EntryCache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{direnv.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.EntryCache, error) {
			loader, err := graft.Dep[ports.Loader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, log), nil
		},
	})
}
