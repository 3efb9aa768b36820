package core

import (
	"context"
	"sync"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"conan-bridge/internal/types"
)

const defaultProbeWorkers = 4

// NodeClassifier turns one graph node plus probe results across all
// selected remotes into a structured availability record.
type NodeClassifier struct {
	Prober AvailabilityProber
	// Workers bounds the per-node fan-out across remotes.
	Workers int
}

func NewNodeClassifier(prober AvailabilityProber) NodeClassifier {
	return NodeClassifier{
		Prober:  prober,
		Workers: defaultProbeWorkers,
	}
}

// Classify computes the availability record for node. The emitted remote
// entries always match the selector's order, regardless of probe
// completion order. A probe failure for one remote degrades that entry
// to none and never prevents classification of the rest.
func (c NodeClassifier) Classify(ctx context.Context, node *types.GraphNode, remotes []types.Remote) types.PackageAvailability {
	assert.NotEmpty(ctx, node.Ref.Name, "classifier requires a node with a package reference")

	availability := types.PackageAvailability{
		Local:   c.classifyLocal(ctx, node),
		Remotes: []types.RemoteAvailability{},
	}
	if node.BinaryState == types.BinaryStateInvalid {
		availability.IsIncompatible = true
		availability.IncompatibleReason = node.InvalidReason
	}
	if len(remotes) == 0 {
		return availability
	}

	// Results are index-addressed so the order stays the selector's even
	// when probes complete out of order.
	results := make([]types.RemoteAvailability, len(remotes))
	tasks := make(chan int)
	workerCount := c.Workers
	if workerCount <= 0 {
		workerCount = defaultProbeWorkers
	}
	if len(remotes) < workerCount {
		workerCount = len(remotes)
	}
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range tasks {
				results[idx] = c.probeRemote(ctx, node, remotes[idx])
			}
		}()
	}
	for idx := range remotes {
		tasks <- idx
	}
	close(tasks)
	wg.Wait()

	availability.Remotes = results
	return availability
}

// classifyLocal probes the local cache explicitly. The graph's residency
// tags can disagree with the cache contents; the explicit probe is the
// source of truth.
func (c NodeClassifier) classifyLocal(ctx context.Context, node *types.GraphNode) types.LocalAvailability {
	local := types.LocalAvailability{
		RecipeStatus: types.RecipeStatusNone,
		BinaryStatus: types.BinaryStatusNone,
	}
	if c.Prober.RecipeAvailable(ctx, *node.Ref, nil) {
		local.RecipeStatus = types.RecipeStatusCache
	}
	if c.Prober.BinaryAvailable(ctx, *node.Ref, node.PackageID, nil) {
		local.BinaryStatus = types.BinaryStatusCache
	}
	return local
}

// probeRemote runs the recipe and binary probes independently: a remote
// can in principle serve a binary whose recipe listing failed.
func (c NodeClassifier) probeRemote(ctx context.Context, node *types.GraphNode, remote types.Remote) types.RemoteAvailability {
	entry := types.RemoteAvailability{
		RemoteName:   remote.Name,
		RecipeStatus: types.RecipeStatusNone,
		BinaryStatus: types.BinaryStatusNone,
	}
	if c.Prober.RecipeAvailable(ctx, *node.Ref, &remote) {
		entry.RecipeStatus = types.RecipeStatusAvailable
	}
	if c.Prober.BinaryAvailable(ctx, *node.Ref, node.PackageID, &remote) {
		entry.BinaryStatus = types.BinaryStatusAvailable
	}
	return entry
}
