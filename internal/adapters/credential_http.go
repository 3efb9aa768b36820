package adapters

import (
	"context"
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conan-bridge/internal/ports"
	"conan-bridge/internal/shared"
	"conan-bridge/internal/types"
)

const defaultCredentialTimeout = 5 * time.Second

// CredentialAdapter performs the lightweight credential check against a
// remote. The endpoint not existing (404) means the remote requires no
// authentication; callers treat that not-found error as success.
type CredentialAdapter struct {
	Timeout time.Duration

	client         *http.Client
	insecureClient *http.Client
}

func NewCredentialAdapter(timeoutSec int) *CredentialAdapter {
	timeout := defaultCredentialTimeout
	if timeoutSec > 0 {
		timeout = time.Duration(timeoutSec) * time.Second
	}
	return &CredentialAdapter{
		Timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		insecureClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

func (a *CredentialAdapter) CheckCredentials(ctx context.Context, remote types.Remote) error {
	endpoint := strings.TrimRight(remote.URL, "/") + "/v1/users/check_credentials"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create credential request").
			WithCause(err)
	}
	client := a.client
	if !remote.VerifySSL {
		client = a.insecureClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("credential check failed for remote " + remote.Name).
			WithCause(err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("remote has no credential endpoint").
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg("authentication required for remote " + remote.Name).
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("credential check failed for remote " + remote.Name).
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	}
}

var _ ports.CredentialPort = (*CredentialAdapter)(nil)
