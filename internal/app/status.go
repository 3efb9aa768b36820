package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"conan-bridge/internal/core"
	"conan-bridge/internal/ports"
	"conan-bridge/internal/types"
)

// PackageStatus resolves the full dependency graph of the workspace
// manifest and classifies every package's recipe and binary availability
// against the local cache and the selected remotes. The result is a tree
// mirroring the graph's edge structure; the synthetic manifest root is
// never emitted.
func (s Service) PackageStatus(ctx context.Context, req PackageStatusRequest) ([]types.PackageNode, error) {
	if strings.TrimSpace(req.WorkspacePath) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace path is required")
	}
	if strings.TrimSpace(req.HostProfile) == "" || strings.TrimSpace(req.BuildProfile) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("host and build profiles are required")
	}

	manifest, err := s.Workspace.FindManifest(req.WorkspacePath)
	if err != nil {
		return nil, err
	}
	hostProfile, err := s.Profiles.Get(ctx, req.HostProfile)
	if err != nil {
		return nil, err
	}
	buildProfile, err := s.Profiles.Get(ctx, req.BuildProfile)
	if err != nil {
		return nil, err
	}

	remotes, err := s.selector().Select(ctx, req.Remote)
	if err != nil {
		return nil, err
	}

	graph, err := s.Graph.LoadConsumerGraph(ctx, ports.GraphRequest{
		ManifestPath: manifest,
		HostProfile:  hostProfile,
		BuildProfile: buildProfile,
		Remotes:      remotes,
	})
	if err != nil {
		return nil, wrapGraphFailure(err)
	}
	// "never" mode inspects what exists without touching the cache.
	if err := s.Graph.AnalyzeBinaries(ctx, graph, "never", remotes); err != nil {
		return nil, wrapGraphFailure(err)
	}

	walker := core.NewGraphWalker(s.classifier())
	packages, err := walker.Walk(ctx, graph.Root, remotes)
	if err != nil {
		return nil, err
	}
	if packages == nil {
		packages = []types.PackageNode{}
	}
	log.Ctx(ctx).Info().
		Str("manifest", manifest).
		Int("remotes", len(remotes)).
		Int("packages", len(packages)).
		Msg("package status resolved")
	return packages, nil
}

// wrapGraphFailure folds any failure of the external graph builder or
// binary analyzer into one fatal kind, keeping the original message.
func wrapGraphFailure(err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("dependency graph resolution failed: %s", errorText(err))).
		WithCause(err)
}

func errorText(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
