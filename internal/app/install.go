package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"conan-bridge/internal/ports"
	"conan-bridge/internal/types"
)

// Install resolves and installs the whole manifest graph through the
// external install machinery.
func (s Service) Install(ctx context.Context, req InstallRequest) error {
	manifest, err := s.Workspace.FindManifest(req.WorkspacePath)
	if err != nil {
		return err
	}
	hostProfile, buildProfile, err := s.loadProfilePair(ctx, req.HostProfile, req.BuildProfile)
	if err != nil {
		return err
	}
	if err := s.Installer.Install(ctx, ports.InstallSpec{
		ManifestPath: manifest,
		HostProfile:  hostProfile,
		BuildProfile: buildProfile,
		BuildMissing: req.BuildMissing,
	}); err != nil {
		return wrapGraphFailure(err)
	}
	log.Ctx(ctx).Info().Str("manifest", manifest).Msg("install completed")
	return nil
}

// InstallPackage installs a single package by reference.
func (s Service) InstallPackage(ctx context.Context, req InstallPackageRequest) error {
	ref, err := types.ParsePackageReference(req.PackageRef)
	if err != nil {
		return err
	}
	hostProfile, buildProfile, err := s.loadProfilePair(ctx, req.HostProfile, req.BuildProfile)
	if err != nil {
		return err
	}
	if err := s.Installer.InstallReference(ctx, ports.InstallReferenceSpec{
		Ref:          ref,
		HostProfile:  hostProfile,
		BuildProfile: buildProfile,
		BuildMissing: req.BuildMissing,
	}); err != nil {
		return wrapGraphFailure(err)
	}
	log.Ctx(ctx).Info().Str("ref", ref.String()).Msg("package installed")
	return nil
}

// UploadLocal pushes one locally cached package to the named remote.
func (s Service) UploadLocal(ctx context.Context, req UploadLocalRequest) error {
	ref, err := types.ParsePackageReference(req.PackageRef)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.RemoteName) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("remote name is required")
	}
	remotes, err := s.selector().Select(ctx, req.RemoteName)
	if err != nil {
		return err
	}
	if len(remotes) == 0 || remotes[0].Name != req.RemoteName {
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg("not authenticated to remote " + req.RemoteName)
	}
	if err := s.Uploader.Upload(ctx, ports.UploadSpec{
		Ref:       ref,
		PackageID: req.PackageID,
		Remote:    remotes[0],
		Force:     req.Force,
	}); err != nil {
		return err
	}
	log.Ctx(ctx).Info().
		Str("ref", ref.String()).
		Str("remote", req.RemoteName).
		Msg("package uploaded")
	return nil
}

func (s Service) loadProfilePair(ctx context.Context, host string, build string) (types.Profile, types.Profile, error) {
	hostProfile, err := s.Profiles.Get(ctx, host)
	if err != nil {
		return types.Profile{}, types.Profile{}, err
	}
	buildProfile, err := s.Profiles.Get(ctx, build)
	if err != nil {
		return types.Profile{}, types.Profile{}, err
	}
	return hostProfile, buildProfile, nil
}
