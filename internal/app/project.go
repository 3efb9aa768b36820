package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conan-bridge/internal/ports"
)

// CreateProject builds the workspace package end to end (export, graph,
// build, test) through the external toolchain.
func (s Service) CreateProject(ctx context.Context, req CreateProjectRequest) error {
	manifest, err := s.Workspace.FindManifest(req.WorkspacePath)
	if err != nil {
		return err
	}
	hostProfile, buildProfile, err := s.loadProfilePair(ctx, req.HostProfile, req.BuildProfile)
	if err != nil {
		return err
	}
	return s.Project.Create(ctx, ports.ProjectSpec{
		ManifestPath: manifest,
		HostProfile:  hostProfile,
		BuildProfile: buildProfile,
		Options:      req.Options,
	})
}

// ScaffoldProject generates a new project skeleton from a template.
func (s Service) ScaffoldProject(ctx context.Context, req ScaffoldProjectRequest) error {
	if strings.TrimSpace(req.Template) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project template is required")
	}
	if strings.TrimSpace(req.WorkspacePath) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace path is required")
	}
	return s.Project.Scaffold(ctx, ports.ScaffoldSpec{
		Template: req.Template,
		Dir:      req.WorkspacePath,
		Name:     req.Name,
		Version:  req.Version,
	})
}
