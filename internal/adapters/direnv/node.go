package direnv

import (
	"context"
	"time"

	"github.com/grindlemire/graft"
	"go.trai.ch/denv/internal/adapters/config"
	"go.trai.ch/denv/internal/adapters/logger"
	"go.trai.ch/denv/internal/core/ports"
)

// NodeID is the unique identifier for the loader Graft node.
const NodeID graft.ID = "adapter.loader"

func init() {
	graft.Register(graft.Node[ports.Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Loader, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewInvoker(cfg.Loader, time.Duration(cfg.Timeout), log), nil
		},
	})
}
