package types

// RecipeState is the recipe provenance tag computed by the external graph
// builder for one node.
type RecipeState string

const (
	RecipeStateConsumer   RecipeState = "consumer"
	RecipeStateCache      RecipeState = "cache"
	RecipeStateDownloaded RecipeState = "downloaded"
	RecipeStateUpdated    RecipeState = "updated"
	RecipeStateVirtual    RecipeState = "virtual"
	RecipeStateUnknown    RecipeState = "unknown"
)

// BinaryState is the binary availability tag computed by the external
// binary analyzer for one node.
type BinaryState string

const (
	BinaryStateBuild    BinaryState = "build"
	BinaryStateCache    BinaryState = "cache"
	BinaryStateDownload BinaryState = "download"
	BinaryStateMissing  BinaryState = "missing"
	BinaryStateInvalid  BinaryState = "invalid"
	BinaryStateSkip     BinaryState = "skip"
	BinaryStateUnknown  BinaryState = "unknown"
)

// GraphNode is one node of the consumer dependency graph as produced by
// the external graph builder. Ref is nil for synthetic nodes (a
// conanfile.txt root or a virtual requirement holder).
type GraphNode struct {
	Ref           *PackageReference
	PackageID     string
	RecipeState   RecipeState
	BinaryState   BinaryState
	InvalidReason string
	Children      []*GraphNode
}

// DepGraph is the consumer dependency graph. Nodes reachable through
// several requirement edges appear once here; the walker duplicates them
// per edge when building the tree view. The provenance fields record how
// the graph was built so the binary analyzer can re-inspect it.
type DepGraph struct {
	Root *GraphNode

	ManifestPath     string
	HostProfilePath  string
	BuildProfilePath string
}

// IsConsumer reports whether the node is the directly-loaded manifest.
func (n *GraphNode) IsConsumer() bool {
	return n.RecipeState == RecipeStateConsumer
}
