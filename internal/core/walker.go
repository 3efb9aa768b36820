package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"conan-bridge/internal/types"
)

// GraphWalker recursively walks the dependency graph depth-first and
// assembles the package tree mirroring the graph's edge structure. Nodes
// reachable through several edges are classified once per edge, so
// duplicated subtrees stay independent.
type GraphWalker struct {
	Classifier NodeClassifier
}

func NewGraphWalker(classifier NodeClassifier) GraphWalker {
	return GraphWalker{Classifier: classifier}
}

// Walk returns the package records for node. Children are computed
// before the parent record is assembled. Synthetic nodes without a
// package reference (a conanfile.txt root, a virtual requirement holder)
// expand into their flattened children instead of emitting a record.
func (w GraphWalker) Walk(ctx context.Context, node *types.GraphNode, remotes []types.Remote) ([]types.PackageNode, error) {
	if node == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var children []types.PackageNode
	for _, child := range node.Children {
		sub, err := w.Walk(ctx, child, remotes)
		if err != nil {
			return nil, err
		}
		children = append(children, sub...)
	}

	if node.Ref == nil {
		return children, nil
	}

	kind := types.NodeKindDependency
	if node.IsConsumer() {
		kind = types.NodeKindConsumer
	}
	availability := w.Classifier.Classify(ctx, node, remotes)
	if children == nil {
		children = []types.PackageNode{}
	}
	pkg := types.PackageNode{
		Name:         node.Ref.Name,
		Version:      node.Ref.Version,
		Ref:          node.Ref.String(),
		PackageID:    node.PackageID,
		Kind:         kind,
		Availability: availability,
		Dependencies: children,
	}
	log.Ctx(ctx).Debug().Str("ref", pkg.Ref).Int("dependencies", len(children)).Msg("package classified")
	return []types.PackageNode{pkg}, nil
}
