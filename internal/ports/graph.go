package ports

import (
	"context"

	"conan-bridge/internal/types"
)

// GraphRequest carries everything the external graph builder needs to
// construct the consumer dependency graph.
type GraphRequest struct {
	ManifestPath string
	HostProfile  types.Profile
	BuildProfile types.Profile
	Remotes      []types.Remote
	Update       bool
}

// GraphPort is the seam to the external dependency resolver. The bridge
// never computes version resolution or binary compatibility itself.
type GraphPort interface {
	LoadConsumerGraph(ctx context.Context, req GraphRequest) (*types.DepGraph, error)
	// AnalyzeBinaries fills the binary state tags of every node in place.
	// Mode "never" is pure inspection with no cache side effects.
	AnalyzeBinaries(ctx context.Context, graph *types.DepGraph, mode string, remotes []types.Remote) error
}
