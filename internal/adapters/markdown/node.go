package markdown

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/qsnap/internal/core/ports"
)

// NodeID is the unique identifier for the link inventory Graft node.
const NodeID graft.ID = "adapter.markdown_inventory"

func init() {
	graft.Register(graft.Node[ports.LinkInventory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LinkInventory, error) {
			return NewInventory(), nil
		},
	})
}
