package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conan-bridge/internal/ports"
	"conan-bridge/internal/types"
)

// ListProfiles returns the home profiles plus, when localDir is set, the
// profile files found there.
func (s Service) ListProfiles(ctx context.Context, localDir string) ([]types.Profile, error) {
	return s.Profiles.List(ctx, localDir)
}

func (s Service) CreateProfile(ctx context.Context, req CreateProfileRequest) (types.Profile, error) {
	if strings.TrimSpace(req.Name) == "" {
		return types.Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("profile name is required")
	}
	return s.Profiles.Create(ctx, ports.CreateProfileRequest{
		Name:     req.Name,
		Detect:   req.Detect,
		Settings: req.Settings,
		Dir:      req.ProfilesPath,
	})
}

// LoadSettings reads the settings catalog from the home folder.
func (s Service) LoadSettings(ctx context.Context) (types.Settings, error) {
	return s.Settings.Load(ctx)
}
