package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conan-bridge/internal/types"
)

// ListRemotes returns every configured remote together with whether the
// current credentials fail against it.
func (s Service) ListRemotes(ctx context.Context) ([]RemoteInfo, error) {
	remotes, err := s.Remotes.List(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]RemoteInfo, 0, len(remotes))
	for _, remote := range remotes {
		infos = append(infos, RemoteInfo{
			Remote:       remote,
			RequiresAuth: !s.credentialsOK(ctx, remote),
		})
	}
	return infos, nil
}

// AddRemote registers a new remote and reports whether it requires
// authentication.
func (s Service) AddRemote(ctx context.Context, req AddRemoteRequest) (RemoteInfo, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.URL) == "" {
		return RemoteInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("remote name and url are required")
	}
	remote := types.Remote{Name: req.Name, URL: req.URL, VerifySSL: req.VerifySSL}
	if err := s.RemoteAdmin.Add(ctx, remote); err != nil {
		return RemoteInfo{}, err
	}
	return RemoteInfo{Remote: remote, RequiresAuth: !s.credentialsOK(ctx, remote)}, nil
}

func (s Service) LoginRemote(ctx context.Context, req LoginRemoteRequest) error {
	if _, err := s.Remotes.Get(ctx, req.Name); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("remote not found: " + req.Name).
			WithCause(err)
	}
	return s.RemoteAdmin.Login(ctx, req.Name, req.User, req.Password)
}

func (s Service) RemoveRemote(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("remote name is required")
	}
	return s.RemoteAdmin.Remove(ctx, name)
}

func (s Service) credentialsOK(ctx context.Context, remote types.Remote) bool {
	err := s.Credentials.CheckCredentials(ctx, remote)
	if err == nil {
		return true
	}
	return errbuilder.CodeOf(err) == errbuilder.CodeNotFound
}
