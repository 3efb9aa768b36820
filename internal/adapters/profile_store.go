package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conan-bridge/internal/ports"
	"conan-bridge/internal/types"
)

// ProfileStoreAdapter resolves profiles from the Conan home profiles
// folder and, when asked, from a workspace-local directory. Detection is
// delegated to the conan CLI, plain profiles are written directly.
type ProfileStoreAdapter struct {
	Home string
	CLI  *ConanCLIAdapter
}

func NewProfileStoreAdapter(home string, cli *ConanCLIAdapter) *ProfileStoreAdapter {
	return &ProfileStoreAdapter{Home: home, CLI: cli}
}

func (a *ProfileStoreAdapter) profilesDir() string {
	return filepath.Join(a.Home, "profiles")
}

func (a *ProfileStoreAdapter) List(_ context.Context, localDir string) ([]types.Profile, error) {
	profiles, err := collectProfiles(a.profilesDir(), false)
	if err != nil {
		return nil, err
	}
	if localDir != "" {
		local, err := collectProfiles(localDir, true)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, local...)
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Name != profiles[j].Name {
			return profiles[i].Name < profiles[j].Name
		}
		return !profiles[i].Local && profiles[j].Local
	})
	return profiles, nil
}

func (a *ProfileStoreAdapter) Get(_ context.Context, name string) (types.Profile, error) {
	// A path-like name points at a profile file directly, e.g. a
	// workspace-local profile passed by the caller.
	if strings.ContainsAny(name, "/\\") {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(name)
			if err != nil {
				abs = name
			}
			return types.Profile{Name: filepath.Base(name), Path: abs, Local: true}, nil
		}
		return types.Profile{}, notFoundProfile(name)
	}
	path := filepath.Join(a.profilesDir(), name)
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return types.Profile{}, notFoundProfile(name)
	}
	return types.Profile{Name: name, Path: path}, nil
}

func (a *ProfileStoreAdapter) Create(ctx context.Context, req ports.CreateProfileRequest) (types.Profile, error) {
	if req.Detect && len(req.Settings) == 0 {
		args := []string{"profile", "detect", "--name", req.Name}
		if _, err := a.CLI.run(ctx, "", args...); err != nil {
			return types.Profile{}, err
		}
		return a.Get(ctx, req.Name)
	}

	dir := req.Dir
	local := dir != ""
	if dir == "" {
		dir = a.profilesDir()
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return types.Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create profiles directory").
			WithCause(err)
	}
	path := filepath.Join(dir, req.Name)
	if err := os.WriteFile(path, renderProfile(req.Settings), 0o644); err != nil {
		return types.Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write profile %q", req.Name)).
			WithCause(err)
	}
	return types.Profile{Name: req.Name, Path: path, Local: local}, nil
}

// renderProfile emits the ini-style profile format with settings sorted
// for stable output.
func renderProfile(settings map[string]string) []byte {
	var sb strings.Builder
	sb.WriteString("[settings]\n")
	for _, key := range sortedKeys(settings) {
		fmt.Fprintf(&sb, "%s=%s\n", key, settings[key])
	}
	return []byte(sb.String())
}

func collectProfiles(dir string, local bool) ([]types.Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to read profiles directory %s", dir)).
			WithCause(err)
	}
	var profiles []types.Profile
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		profiles = append(profiles, types.Profile{
			Name:  entry.Name(),
			Path:  filepath.Join(dir, entry.Name()),
			Local: local,
		})
	}
	return profiles, nil
}

func notFoundProfile(name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("profile not found: %q", name))
}

var _ ports.ProfileStorePort = (*ProfileStoreAdapter)(nil)
