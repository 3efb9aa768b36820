package app

import (
	"conan-bridge/internal/adapters"
	"conan-bridge/internal/core"
	"conan-bridge/internal/ports"
)

// Config carries the knobs the service needs at construction time. The
// external toolchain handle is explicit here, never ambient global
// state: everything downstream receives it through the Service.
type Config struct {
	// Home is the Conan home folder ($CONAN_HOME equivalent).
	Home string
	// Binary is the conan executable wrapped for graph construction and
	// install/upload operations.
	Binary string
	// FallbackRemote is appended after an explicitly requested remote.
	FallbackRemote string
	// ProbeWorkers bounds the per-node remote probe fan-out.
	ProbeWorkers int
	// ProbeTimeoutSec is the per-request timeout of catalog and
	// credential probes.
	ProbeTimeoutSec int
}

type Service struct {
	Workspace   ports.WorkspacePort
	Profiles    ports.ProfileStorePort
	Remotes     ports.RemoteRegistryPort
	RemoteAdmin ports.RemoteAdminPort
	Credentials ports.CredentialPort
	Catalog     ports.CatalogPort
	Graph       ports.GraphPort
	Installer   ports.InstallerPort
	Uploader    ports.UploaderPort
	Project     ports.ProjectPort
	Settings    ports.SettingsPort

	HomeDir        string
	FallbackRemote string
	ProbeWorkers   int
}

func NewService(cfg Config) Service {
	conan := adapters.NewConanCLIAdapter(cfg.Binary, cfg.Home)
	registry := adapters.NewRemoteRegistryAdapter(cfg.Home, conan)
	fallback := cfg.FallbackRemote
	if fallback == "" {
		fallback = core.DefaultFallbackRemote
	}
	return Service{
		Workspace:   adapters.NewWorkspaceAdapter(),
		Profiles:    adapters.NewProfileStoreAdapter(cfg.Home, conan),
		Remotes:     registry,
		RemoteAdmin: registry,
		Credentials: adapters.NewCredentialAdapter(cfg.ProbeTimeoutSec),
		Catalog:     adapters.NewCatalogAdapter(conan, cfg.ProbeTimeoutSec),
		Graph:       conan,
		Installer:   conan,
		Uploader:    conan,
		Project:     conan,
		Settings:    adapters.NewSettingsFileAdapter(cfg.Home),

		HomeDir:        cfg.Home,
		FallbackRemote: fallback,
		ProbeWorkers:   cfg.ProbeWorkers,
	}
}

// Home returns the Conan home folder the service operates on.
func (s Service) Home() string {
	return s.HomeDir
}

func (s Service) selector() core.RemoteSelector {
	selector := core.NewRemoteSelector(s.Remotes, s.Credentials)
	if s.FallbackRemote != "" {
		selector.Fallback = s.FallbackRemote
	}
	return selector
}

func (s Service) classifier() core.NodeClassifier {
	classifier := core.NewNodeClassifier(core.NewAvailabilityProber(s.Catalog))
	if s.ProbeWorkers > 0 {
		classifier.Workers = s.ProbeWorkers
	}
	return classifier
}
