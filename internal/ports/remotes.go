package ports

import (
	"context"

	"conan-bridge/internal/types"
)

// RemoteRegistryPort reads the configured remotes. Get fails with a
// not-found error when the name is unknown.
type RemoteRegistryPort interface {
	List(ctx context.Context) ([]types.Remote, error)
	Get(ctx context.Context, name string) (types.Remote, error)
}

// RemoteAdminPort mutates the remote configuration.
type RemoteAdminPort interface {
	Add(ctx context.Context, remote types.Remote) error
	Remove(ctx context.Context, name string) error
	Login(ctx context.Context, name string, user string, password string) error
}

// CredentialPort checks whether the stored credentials grant access to a
// remote. A not-found failure means the remote requires no
// authentication and counts as success.
type CredentialPort interface {
	CheckCredentials(ctx context.Context, remote types.Remote) error
}
