package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"conan-bridge/internal/types"
)

func credentialServer(t *testing.T, status int) types.Remote {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/users/check_credentials", r.URL.Path)
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return types.Remote{Name: "lab", URL: server.URL, VerifySSL: true}
}

func TestCheckCredentialsOK(t *testing.T) {
	remote := credentialServer(t, http.StatusOK)
	err := NewCredentialAdapter(0).CheckCredentials(context.Background(), remote)
	require.NoError(t, err)
}

func TestCheckCredentialsNoEndpoint(t *testing.T) {
	remote := credentialServer(t, http.StatusNotFound)
	err := NewCredentialAdapter(0).CheckCredentials(context.Background(), remote)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestCheckCredentialsUnauthorized(t *testing.T) {
	remote := credentialServer(t, http.StatusUnauthorized)
	err := NewCredentialAdapter(0).CheckCredentials(context.Background(), remote)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodePermissionDenied, errbuilder.CodeOf(err))
}

func TestCheckCredentialsForbidden(t *testing.T) {
	remote := credentialServer(t, http.StatusForbidden)
	err := NewCredentialAdapter(0).CheckCredentials(context.Background(), remote)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodePermissionDenied, errbuilder.CodeOf(err))
}

func TestCheckCredentialsServerError(t *testing.T) {
	remote := credentialServer(t, http.StatusInternalServerError)
	err := NewCredentialAdapter(0).CheckCredentials(context.Background(), remote)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}

func TestCheckCredentialsUnreachable(t *testing.T) {
	remote := types.Remote{Name: "lab", URL: "http://127.0.0.1:1", VerifySSL: true}
	err := NewCredentialAdapter(0).CheckCredentials(context.Background(), remote)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}
