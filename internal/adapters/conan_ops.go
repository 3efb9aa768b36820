package adapters

import (
	"context"
	"fmt"
	"sort"

	"conan-bridge/internal/ports"
)

// Install resolves and installs the whole manifest graph.
func (a *ConanCLIAdapter) Install(ctx context.Context, spec ports.InstallSpec) error {
	args := []string{
		"install", spec.ManifestPath,
		"-pr:h", spec.HostProfile.Path,
		"-pr:b", spec.BuildProfile.Path,
	}
	if spec.BuildMissing {
		args = append(args, "--build=missing", "--update")
	}
	_, err := a.run(ctx, "", args...)
	return err
}

// InstallReference installs a single package by reference.
func (a *ConanCLIAdapter) InstallReference(ctx context.Context, spec ports.InstallReferenceSpec) error {
	args := []string{
		"install",
		"--requires=" + spec.Ref.String(),
		"-pr:h", spec.HostProfile.Path,
		"-pr:b", spec.BuildProfile.Path,
		"--update",
	}
	if spec.BuildMissing {
		args = append(args, "--build=missing")
	}
	_, err := a.run(ctx, "", args...)
	return err
}

// Upload pushes one locally cached package to a remote.
func (a *ConanCLIAdapter) Upload(ctx context.Context, spec ports.UploadSpec) error {
	pattern := spec.Ref.String()
	if spec.PackageID != "" {
		pattern = fmt.Sprintf("%s:%s", pattern, spec.PackageID)
	}
	args := []string{"upload", pattern, "-r", spec.Remote.Name, "--confirm"}
	if spec.Force {
		args = append(args, "--force")
	}
	_, err := a.run(ctx, "", args...)
	return err
}

// Create builds the workspace package end to end.
func (a *ConanCLIAdapter) Create(ctx context.Context, spec ports.ProjectSpec) error {
	args := []string{
		"create", spec.ManifestPath,
		"-pr:h", spec.HostProfile.Path,
		"-pr:b", spec.BuildProfile.Path,
	}
	for _, key := range sortedKeys(spec.Options) {
		args = append(args, "-o", fmt.Sprintf("%s=%s", key, spec.Options[key]))
	}
	_, err := a.run(ctx, "", args...)
	return err
}

// Scaffold generates a new project skeleton from a template.
func (a *ConanCLIAdapter) Scaffold(ctx context.Context, spec ports.ScaffoldSpec) error {
	args := []string{"new", spec.Template}
	if spec.Name != "" {
		args = append(args, "-d", "name="+spec.Name)
	}
	if spec.Version != "" {
		args = append(args, "-d", "version="+spec.Version)
	}
	_, err := a.run(ctx, spec.Dir, args...)
	return err
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var _ ports.InstallerPort = (*ConanCLIAdapter)(nil)
var _ ports.UploaderPort = (*ConanCLIAdapter)(nil)
var _ ports.ProjectPort = (*ConanCLIAdapter)(nil)
var _ ports.GraphPort = (*ConanCLIAdapter)(nil)
