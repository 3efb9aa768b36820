package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conan-bridge/internal/ports"
	"conan-bridge/internal/shared"
	"conan-bridge/internal/types"
)

// ConanCLIAdapter wraps the conan executable. It is the single handle to
// the external dependency resolver: graph construction, binary analysis,
// install, upload, project creation and local cache listing all go
// through it.
type ConanCLIAdapter struct {
	Binary string
	Home   string
}

func NewConanCLIAdapter(binary string, home string) *ConanCLIAdapter {
	if strings.TrimSpace(binary) == "" {
		binary = "conan"
	}
	return &ConanCLIAdapter{Binary: binary, Home: home}
}

func (a *ConanCLIAdapter) run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, a.Binary, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	if a.Home != "" {
		cmd.Env = append(cmd.Env, "CONAN_HOME="+a.Home)
	}
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("conan %s failed", firstArg(args))).
				WithCause(shared.CommandError(exitErr.Stderr, err))
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to run conan").
			WithCause(err)
	}
	return output, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// --- GraphPort ---

// graphInfoPayload mirrors the JSON emitted by `conan graph info
// --format=json`. Node dependencies list all transitive requirements;
// only direct ones form edges.
type graphInfoPayload struct {
	Graph struct {
		Nodes map[string]graphInfoNode `json:"nodes"`
	} `json:"graph"`
}

type graphInfoNode struct {
	Ref       string  `json:"ref"`
	PackageID string  `json:"package_id"`
	Recipe    string  `json:"recipe"`
	Binary    *string `json:"binary"`
	Info      struct {
		Invalid string `json:"invalid"`
	} `json:"info"`
	Dependencies map[string]struct {
		Direct bool `json:"direct"`
	} `json:"dependencies"`
}

func (a *ConanCLIAdapter) LoadConsumerGraph(ctx context.Context, req ports.GraphRequest) (*types.DepGraph, error) {
	args := []string{
		"graph", "info", req.ManifestPath,
		"-pr:h", req.HostProfile.Path,
		"-pr:b", req.BuildProfile.Path,
		"--format=json",
	}
	args = append(args, remoteArgs(req.Remotes)...)
	if req.Update {
		args = append(args, "--update")
	}
	output, err := a.run(ctx, "", args...)
	if err != nil {
		return nil, err
	}
	graph, err := parseGraphInfo(output)
	if err != nil {
		return nil, err
	}
	graph.ManifestPath = req.ManifestPath
	graph.HostProfilePath = req.HostProfile.Path
	graph.BuildProfilePath = req.BuildProfile.Path
	return graph, nil
}

// AnalyzeBinaries re-runs graph info with the requested build mode and
// overlays the binary state tags onto the already-built graph. The conan
// CLI computes analysis in the same pass as graph construction; the two
// methods keep the collaborator seam explicit.
func (a *ConanCLIAdapter) AnalyzeBinaries(ctx context.Context, graph *types.DepGraph, mode string, remotes []types.Remote) error {
	if graph == nil || graph.Root == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("binary analysis requires a loaded graph")
	}
	// Re-inspect from the graph's recorded provenance: the consumer
	// graph shape is identical across the two invocations.
	args := []string{
		"graph", "info", graph.ManifestPath,
		"-pr:h", graph.HostProfilePath,
		"-pr:b", graph.BuildProfilePath,
		"--build=" + mode, "--format=json",
	}
	args = append(args, remoteArgs(remotes)...)
	output, err := a.run(ctx, "", args...)
	if err != nil {
		return err
	}
	analyzed, err := parseGraphInfo(output)
	if err != nil {
		return err
	}
	overlayBinaryStates(graph.Root, analyzed.Root)
	return nil
}

func remoteArgs(remotes []types.Remote) []string {
	if len(remotes) == 0 {
		return []string{"--no-remote"}
	}
	args := make([]string, 0, 2*len(remotes))
	for _, remote := range remotes {
		args = append(args, "-r", remote.Name)
	}
	return args
}

func parseGraphInfo(output []byte) (*types.DepGraph, error) {
	var payload graphInfoPayload
	if err := json.Unmarshal(output, &payload); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse graph info output").
			WithCause(err)
	}
	root, ok := payload.Graph.Nodes["0"]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("graph info output has no root node")
	}
	built := map[string]*types.GraphNode{}
	return &types.DepGraph{Root: buildGraphNode("0", root, payload.Graph.Nodes, built)}, nil
}

func buildGraphNode(id string, raw graphInfoNode, nodes map[string]graphInfoNode, built map[string]*types.GraphNode) *types.GraphNode {
	if node, ok := built[id]; ok {
		return node
	}
	node := &types.GraphNode{
		PackageID:     raw.PackageID,
		RecipeState:   recipeStateFromTag(raw.Recipe),
		BinaryState:   binaryStateFromTag(raw.Binary),
		InvalidReason: raw.Info.Invalid,
	}
	built[id] = node
	if ref, err := types.ParsePackageReference(raw.Ref); err == nil {
		node.Ref = &ref
	}
	for _, childID := range directChildIDs(raw) {
		child, ok := nodes[childID]
		if !ok {
			continue
		}
		node.Children = append(node.Children, buildGraphNode(childID, child, nodes, built))
	}
	return node
}

// directChildIDs returns the direct requirement ids in stable numeric
// order, matching the declaration order of the manifest.
func directChildIDs(raw graphInfoNode) []string {
	ids := make([]string, 0, len(raw.Dependencies))
	for id, edge := range raw.Dependencies {
		if edge.Direct {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		left, _ := strconv.Atoi(ids[i])
		right, _ := strconv.Atoi(ids[j])
		return left < right
	})
	return ids
}

func overlayBinaryStates(dst *types.GraphNode, src *types.GraphNode) {
	if dst == nil || src == nil {
		return
	}
	dst.BinaryState = src.BinaryState
	dst.InvalidReason = src.InvalidReason
	for i := range dst.Children {
		if i >= len(src.Children) {
			break
		}
		overlayBinaryStates(dst.Children[i], src.Children[i])
	}
}

func recipeStateFromTag(tag string) types.RecipeState {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "consumer", "cli":
		return types.RecipeStateConsumer
	case "cache", "incache":
		return types.RecipeStateCache
	case "downloaded":
		return types.RecipeStateDownloaded
	case "updated", "newer":
		return types.RecipeStateUpdated
	case "virtual":
		return types.RecipeStateVirtual
	default:
		return types.RecipeStateUnknown
	}
}

func binaryStateFromTag(tag *string) types.BinaryState {
	if tag == nil {
		return types.BinaryStateUnknown
	}
	switch strings.ToLower(strings.TrimSpace(*tag)) {
	case "build":
		return types.BinaryStateBuild
	case "cache":
		return types.BinaryStateCache
	case "download":
		return types.BinaryStateDownload
	case "missing":
		return types.BinaryStateMissing
	case "invalid":
		return types.BinaryStateInvalid
	case "skip":
		return types.BinaryStateSkip
	default:
		return types.BinaryStateUnknown
	}
}
