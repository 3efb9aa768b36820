package ports

import (
	"context"

	"conan-bridge/internal/types"
)

type CreateProfileRequest struct {
	Name     string
	Detect   bool
	Settings map[string]string
	// Dir overrides the home profiles folder when set.
	Dir string
}

// ProfileStorePort lists and materializes named profiles. Get fails with
// a not-found error when no profile of that name exists.
type ProfileStorePort interface {
	List(ctx context.Context, localDir string) ([]types.Profile, error)
	Get(ctx context.Context, name string) (types.Profile, error)
	Create(ctx context.Context, req CreateProfileRequest) (types.Profile, error)
}
