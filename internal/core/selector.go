package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"conan-bridge/internal/ports"
	"conan-bridge/internal/types"
)

// DefaultFallbackRemote is appended after an explicitly requested remote
// so that availability checks still cover the public index.
const DefaultFallbackRemote = "conancenter"

// RemoteSelector computes the ordered list of remotes a resolution may
// query. Output order is deterministic: configured order when no remote
// is requested, otherwise requested remote first, fallback second.
type RemoteSelector struct {
	Registry    ports.RemoteRegistryPort
	Credentials ports.CredentialPort
	Fallback    string
}

func NewRemoteSelector(registry ports.RemoteRegistryPort, credentials ports.CredentialPort) RemoteSelector {
	return RemoteSelector{
		Registry:    registry,
		Credentials: credentials,
		Fallback:    DefaultFallbackRemote,
	}
}

// Select resolves the candidate remotes for one resolution and drops, in
// place, every candidate whose credential check fails. An unknown
// requested name is the one fatal remote lookup: it aborts the whole
// resolution.
func (s RemoteSelector) Select(ctx context.Context, requested string) ([]types.Remote, error) {
	if s.Registry == nil || s.Credentials == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("remote selector requires registry and credential ports")
	}

	candidates, err := s.candidates(ctx, strings.TrimSpace(requested))
	if err != nil {
		return nil, err
	}

	selected := make([]types.Remote, 0, len(candidates))
	for _, remote := range candidates {
		if !s.authenticated(ctx, remote) {
			log.Ctx(ctx).Warn().Str("remote", remote.Name).Msg("remote dropped: not authenticated")
			continue
		}
		selected = append(selected, remote)
	}
	return selected, nil
}

func (s RemoteSelector) candidates(ctx context.Context, requested string) ([]types.Remote, error) {
	if requested == "" {
		return s.Registry.List(ctx)
	}
	named, err := s.Registry.Get(ctx, requested)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("remote not found: %q is not configured", requested)).
			WithCause(err)
	}
	candidates := []types.Remote{named}
	if s.Fallback != "" && requested != s.Fallback {
		// A missing fallback is tolerated silently.
		if fallback, err := s.Registry.Get(ctx, s.Fallback); err == nil {
			candidates = append(candidates, fallback)
		}
	}
	return candidates, nil
}

func (s RemoteSelector) authenticated(ctx context.Context, remote types.Remote) bool {
	err := s.Credentials.CheckCredentials(ctx, remote)
	if err == nil {
		return true
	}
	// A not-found credential endpoint means the remote requires no
	// authentication (the public index behaves this way).
	if errbuilder.CodeOf(err) == errbuilder.CodeNotFound {
		return true
	}
	log.Ctx(ctx).Debug().Err(err).Str("remote", remote.Name).Msg("credential check failed")
	return false
}
