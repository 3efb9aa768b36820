package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"

	"conan-bridge/internal/types"
)

// graphInfoFixture is the shape `conan graph info --format=json` emits
// for a consumer requiring boost, which in turn requires zlib.
const graphInfoFixture = `{
  "graph": {
    "nodes": {
      "0": {
        "ref": "conanfile",
        "package_id": null,
        "recipe": "Consumer",
        "binary": null,
        "info": {},
        "dependencies": {
          "1": {"direct": true},
          "2": {"direct": false}
        }
      },
      "1": {
        "ref": "boost/1.84.0#aabb01",
        "package_id": "bo057",
        "recipe": "Cache",
        "binary": "Missing",
        "info": {},
        "dependencies": {
          "2": {"direct": true}
        }
      },
      "2": {
        "ref": "zlib/1.3.1#ccdd02",
        "package_id": "z4f1",
        "recipe": "Downloaded",
        "binary": "Invalid",
        "info": {"invalid": "zlib requires shared=True"},
        "dependencies": {}
      }
    }
  }
}`

func TestParseGraphInfo(t *testing.T) {
	graph, err := parseGraphInfo([]byte(graphInfoFixture))
	require.NoError(t, err)
	require.NotNil(t, graph.Root)

	root := graph.Root
	require.Equal(t, types.RecipeStateConsumer, root.RecipeState)
	require.Len(t, root.Children, 1, "only direct edges form children")

	boost := root.Children[0]
	require.NotNil(t, boost.Ref)
	require.Equal(t, "boost", boost.Ref.Name)
	require.Equal(t, "aabb01", boost.Ref.Revision)
	require.Equal(t, "bo057", boost.PackageID)
	require.Equal(t, types.RecipeStateCache, boost.RecipeState)
	require.Equal(t, types.BinaryStateMissing, boost.BinaryState)

	require.Len(t, boost.Children, 1)
	zlib := boost.Children[0]
	require.Equal(t, "zlib", zlib.Ref.Name)
	require.Equal(t, types.BinaryStateInvalid, zlib.BinaryState)
	require.Equal(t, "zlib requires shared=True", zlib.InvalidReason)
}

func TestParseGraphInfoSharedNodesBuiltOnce(t *testing.T) {
	payload := `{
  "graph": {
    "nodes": {
      "0": {"ref": "conanfile", "recipe": "Consumer", "binary": null, "info": {},
            "dependencies": {"1": {"direct": true}, "2": {"direct": true}}},
      "1": {"ref": "app/1.0#r1", "package_id": "p1", "recipe": "Cache", "binary": "Cache", "info": {},
            "dependencies": {"3": {"direct": true}}},
      "2": {"ref": "lib/2.0#r2", "package_id": "p2", "recipe": "Cache", "binary": "Cache", "info": {},
            "dependencies": {"3": {"direct": true}}},
      "3": {"ref": "zlib/1.3.1#r3", "package_id": "p3", "recipe": "Cache", "binary": "Cache", "info": {},
            "dependencies": {}}
    }
  }
}`
	graph, err := parseGraphInfo([]byte(payload))
	require.NoError(t, err)
	require.Len(t, graph.Root.Children, 2)
	require.Same(t, graph.Root.Children[0].Children[0], graph.Root.Children[1].Children[0],
		"a shared dependency resolves to one node")
}

func TestParseGraphInfoMissingRoot(t *testing.T) {
	_, err := parseGraphInfo([]byte(`{"graph": {"nodes": {}}}`))
	require.Error(t, err)
}

func TestRemoteArgs(t *testing.T) {
	require.Equal(t, []string{"--no-remote"}, remoteArgs(nil))
	require.Equal(t,
		[]string{"-r", "lab", "-r", "conancenter"},
		remoteArgs([]types.Remote{{Name: "lab"}, {Name: "conancenter"}}),
	)
}

func TestOverlayBinaryStates(t *testing.T) {
	dst := &types.GraphNode{
		BinaryState: types.BinaryStateUnknown,
		Children: []*types.GraphNode{
			{BinaryState: types.BinaryStateUnknown},
		},
	}
	src := &types.GraphNode{
		BinaryState: types.BinaryStateDownload,
		Children: []*types.GraphNode{
			{BinaryState: types.BinaryStateBuild, InvalidReason: ""},
		},
	}
	overlayBinaryStates(dst, src)
	require.Equal(t, types.BinaryStateDownload, dst.BinaryState)
	require.Equal(t, types.BinaryStateBuild, dst.Children[0].BinaryState)
}

func TestBinaryStateFromTag(t *testing.T) {
	tag := func(s string) *string { return &s }
	require.Equal(t, types.BinaryStateUnknown, binaryStateFromTag(nil))
	require.Equal(t, types.BinaryStateCache, binaryStateFromTag(tag("Cache")))
	require.Equal(t, types.BinaryStateSkip, binaryStateFromTag(tag("Skip")))
	require.Equal(t, types.BinaryStateUnknown, binaryStateFromTag(tag("EditableBuild")))
}
