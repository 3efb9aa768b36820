package ports

import (
	"context"

	"conan-bridge/internal/types"
)

// InstallSpec installs the whole manifest graph.
type InstallSpec struct {
	ManifestPath string
	HostProfile  types.Profile
	BuildProfile types.Profile
	BuildMissing bool
}

// InstallReferenceSpec installs a single package by reference.
type InstallReferenceSpec struct {
	Ref          types.PackageReference
	HostProfile  types.Profile
	BuildProfile types.Profile
	BuildMissing bool
}

// UploadSpec pushes one local package to a remote.
type UploadSpec struct {
	Ref       types.PackageReference
	PackageID string
	Remote    types.Remote
	Force     bool
}

// InstallerPort triggers the external install machinery.
type InstallerPort interface {
	Install(ctx context.Context, spec InstallSpec) error
	InstallReference(ctx context.Context, spec InstallReferenceSpec) error
}

// UploaderPort triggers the external upload machinery.
type UploaderPort interface {
	Upload(ctx context.Context, spec UploadSpec) error
}

// ProjectSpec builds the package in a workspace.
type ProjectSpec struct {
	ManifestPath string
	HostProfile  types.Profile
	BuildProfile types.Profile
	Options      map[string]string
}

// ScaffoldSpec generates a new project skeleton from a template.
type ScaffoldSpec struct {
	Template string
	Dir      string
	Name     string
	Version  string
}

// ProjectPort creates and scaffolds packages in a workspace.
type ProjectPort interface {
	Create(ctx context.Context, spec ProjectSpec) error
	Scaffold(ctx context.Context, spec ScaffoldSpec) error
}
