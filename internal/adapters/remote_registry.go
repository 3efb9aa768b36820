package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conan-bridge/internal/ports"
	"conan-bridge/internal/types"
)

// remotesFile mirrors the on-disk remotes.json format of the wrapped
// package manager.
type remotesFile struct {
	Remotes []remoteEntry `json:"remotes"`
}

type remoteEntry struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	VerifySSL bool   `json:"verify_ssl"`
}

// RemoteRegistryAdapter reads and mutates <home>/remotes.json. Login
// goes through the conan CLI so credential storage stays external.
type RemoteRegistryAdapter struct {
	Home string
	CLI  *ConanCLIAdapter
}

func NewRemoteRegistryAdapter(home string, cli *ConanCLIAdapter) *RemoteRegistryAdapter {
	return &RemoteRegistryAdapter{Home: home, CLI: cli}
}

func (a *RemoteRegistryAdapter) path() string {
	return filepath.Join(a.Home, "remotes.json")
}

func (a *RemoteRegistryAdapter) List(_ context.Context) ([]types.Remote, error) {
	file, err := a.load()
	if err != nil {
		return nil, err
	}
	remotes := make([]types.Remote, 0, len(file.Remotes))
	for _, entry := range file.Remotes {
		remotes = append(remotes, types.Remote{
			Name:      entry.Name,
			URL:       entry.URL,
			VerifySSL: entry.VerifySSL,
		})
	}
	return remotes, nil
}

func (a *RemoteRegistryAdapter) Get(ctx context.Context, name string) (types.Remote, error) {
	remotes, err := a.List(ctx)
	if err != nil {
		return types.Remote{}, err
	}
	for _, remote := range remotes {
		if remote.Name == name {
			return remote, nil
		}
	}
	return types.Remote{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("remote %q is not configured", name))
}

func (a *RemoteRegistryAdapter) Add(_ context.Context, remote types.Remote) error {
	file, err := a.load()
	if err != nil {
		return err
	}
	for _, entry := range file.Remotes {
		if entry.Name == remote.Name {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("remote %q already exists", remote.Name))
		}
	}
	file.Remotes = append(file.Remotes, remoteEntry{
		Name:      remote.Name,
		URL:       remote.URL,
		VerifySSL: remote.VerifySSL,
	})
	return a.store(file)
}

func (a *RemoteRegistryAdapter) Remove(_ context.Context, name string) error {
	file, err := a.load()
	if err != nil {
		return err
	}
	kept := file.Remotes[:0]
	found := false
	for _, entry := range file.Remotes {
		if entry.Name == name {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("remote %q is not configured", name))
	}
	file.Remotes = kept
	return a.store(file)
}

func (a *RemoteRegistryAdapter) Login(ctx context.Context, name string, user string, password string) error {
	_, err := a.CLI.run(ctx, "", "remote", "login", name, user, "-p", password)
	return err
}

func (a *RemoteRegistryAdapter) load() (remotesFile, error) {
	data, err := os.ReadFile(a.path())
	if err != nil {
		if os.IsNotExist(err) {
			return remotesFile{}, nil
		}
		return remotesFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read remotes file").
			WithCause(err)
	}
	var file remotesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return remotesFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse remotes file").
			WithCause(err)
	}
	return file, nil
}

func (a *RemoteRegistryAdapter) store(file remotesFile) error {
	data, err := json.MarshalIndent(file, "", " ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode remotes file").
			WithCause(err)
	}
	if err := os.MkdirAll(a.Home, 0o750); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create home directory").
			WithCause(err)
	}
	if err := os.WriteFile(a.path(), data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write remotes file").
			WithCause(err)
	}
	return nil
}

var _ ports.RemoteRegistryPort = (*RemoteRegistryAdapter)(nil)
var _ ports.RemoteAdminPort = (*RemoteRegistryAdapter)(nil)
