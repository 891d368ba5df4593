package artifacts

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/brisk/internal/core/ports"
)

// NodeID is the unique identifier for the artifact writer Graft node.
const NodeID graft.ID = "adapter.artifacts"

func init() {
	graft.Register(graft.Node[ports.ArtifactWriter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArtifactWriter, error) {
			return NewWriter(), nil
		},
	})
}
