package types

// RecipeStatus describes where a recipe was found. Local classification
// uses none/cache, remote classification none/available.
type RecipeStatus string

const (
	RecipeStatusNone      RecipeStatus = "none"
	RecipeStatusCache     RecipeStatus = "cache"
	RecipeStatusAvailable RecipeStatus = "available"
)

// BinaryStatus describes where a binary was found, same vocabulary as
// RecipeStatus.
type BinaryStatus string

const (
	BinaryStatusNone      BinaryStatus = "none"
	BinaryStatusCache     BinaryStatus = "cache"
	BinaryStatusAvailable BinaryStatus = "available"
)

type NodeKind string

const (
	NodeKindConsumer   NodeKind = "consumer"
	NodeKindDependency NodeKind = "dependency"
)

// LocalAvailability is the recipe/binary presence in the local cache.
type LocalAvailability struct {
	RecipeStatus RecipeStatus `json:"recipe_status"`
	BinaryStatus BinaryStatus `json:"binary_status"`
}

// RemoteAvailability is the recipe/binary presence on one authenticated
// remote.
type RemoteAvailability struct {
	RemoteName   string       `json:"remote_name"`
	RecipeStatus RecipeStatus `json:"recipe_status"`
	BinaryStatus BinaryStatus `json:"binary_status"`
}

// PackageAvailability is the full classification of one package node.
// Remotes preserves the remote selector's ordering. IncompatibleReason is
// set exactly when IsIncompatible is true.
type PackageAvailability struct {
	IsIncompatible     bool                 `json:"is_incompatible"`
	IncompatibleReason string               `json:"incompatible_reason,omitempty"`
	Local              LocalAvailability    `json:"local_status"`
	Remotes            []RemoteAvailability `json:"remotes_status"`
}

// PackageNode is one entry of the package tree mirroring the dependency
// graph's edge structure. The tree is built fresh per request and never
// persisted.
type PackageNode struct {
	Name         string              `json:"name"`
	Version      string              `json:"version"`
	Ref          string              `json:"ref"`
	PackageID    string              `json:"id"`
	Kind         NodeKind            `json:"kind"`
	Availability PackageAvailability `json:"availability"`
	Dependencies []PackageNode       `json:"dependencies"`
}
