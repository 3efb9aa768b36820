package ports

import (
	"context"

	"conan-bridge/internal/types"
)

// SettingsPort loads the settings catalog from the package manager home.
type SettingsPort interface {
	Load(ctx context.Context) (types.Settings, error)
}
