package ports

import (
	"context"

	"conan-bridge/internal/types"
)

// CatalogPort answers revision queries against the local cache or one
// remote. A nil remote targets the local cache.
type CatalogPort interface {
	RecipeRevisions(ctx context.Context, ref types.PackageReference, remote *types.Remote) ([]string, error)
	PackageRevisions(ctx context.Context, bref types.BinaryReference, remote *types.Remote) ([]string, error)
	LatestRecipeRevision(ctx context.Context, ref types.PackageReference, remote *types.Remote) (types.PackageReference, error)
}
