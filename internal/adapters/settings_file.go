package adapters

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"conan-bridge/internal/ports"
	"conan-bridge/internal/types"
)

// SettingsFileAdapter parses <home>/settings.yml, the catalogue of
// values a profile may choose from.
type SettingsFileAdapter struct {
	Home string
}

func NewSettingsFileAdapter(home string) *SettingsFileAdapter {
	return &SettingsFileAdapter{Home: home}
}

type settingsDocument struct {
	OS        map[string]map[string]any `yaml:"os"`
	Arch      []string                  `yaml:"arch"`
	Compiler  map[string]map[string]any `yaml:"compiler"`
	BuildType []string                  `yaml:"build_type"`
}

func (a *SettingsFileAdapter) Load(_ context.Context) (types.Settings, error) {
	path := filepath.Join(a.Home, "settings.yml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Settings{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("settings.yml not found, run a conan command to initialize the home folder")
		}
		return types.Settings{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read settings.yml").
			WithCause(err)
	}
	var doc settingsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.Settings{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse settings.yml").
			WithCause(err)
	}
	return types.Settings{
		Path:      path,
		OS:        doc.OS,
		Arch:      doc.Arch,
		Compiler:  doc.Compiler,
		BuildType: doc.BuildType,
	}, nil
}

var _ ports.SettingsPort = (*SettingsFileAdapter)(nil)
