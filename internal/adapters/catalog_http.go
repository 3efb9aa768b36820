package adapters

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conan-bridge/internal/ports"
	"conan-bridge/internal/shared"
	"conan-bridge/internal/types"
)

const defaultCatalogTimeout = 10 * time.Second

// CatalogAdapter answers revision queries. Remote targets speak the
// Conan server v2 REST API; the local cache (nil remote) goes through
// the conan CLI.
type CatalogAdapter struct {
	CLI     *ConanCLIAdapter
	Timeout time.Duration

	client         *http.Client
	insecureClient *http.Client
}

func NewCatalogAdapter(cli *ConanCLIAdapter, timeoutSec int) *CatalogAdapter {
	timeout := defaultCatalogTimeout
	if timeoutSec > 0 {
		timeout = time.Duration(timeoutSec) * time.Second
	}
	return &CatalogAdapter{
		CLI:     cli,
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

func (a *CatalogAdapter) RecipeRevisions(ctx context.Context, ref types.PackageReference, remote *types.Remote) ([]string, error) {
	if remote == nil {
		return a.CLI.LocalRecipeRevisions(ctx, ref)
	}
	endpoint := recipeEndpoint(*remote, ref) + "/revisions"
	var payload struct {
		Revisions []struct {
			Revision string `json:"revision"`
		} `json:"revisions"`
	}
	if err := a.getJSON(ctx, *remote, endpoint, &payload); err != nil {
		return nil, err
	}
	revisions := make([]string, 0, len(payload.Revisions))
	for _, entry := range payload.Revisions {
		revisions = append(revisions, entry.Revision)
	}
	return revisions, nil
}

func (a *CatalogAdapter) PackageRevisions(ctx context.Context, bref types.BinaryReference, remote *types.Remote) ([]string, error) {
	if remote == nil {
		return a.CLI.LocalPackageRevisions(ctx, bref)
	}
	if !bref.Ref.HasRevision() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package revision listing requires a resolved recipe revision")
	}
	endpoint := fmt.Sprintf("%s/revisions/%s/packages/%s/revisions",
		recipeEndpoint(*remote, bref.Ref),
		url.PathEscape(bref.Ref.Revision),
		url.PathEscape(bref.PackageID),
	)
	var payload struct {
		Revisions []struct {
			Revision string `json:"revision"`
		} `json:"revisions"`
	}
	if err := a.getJSON(ctx, *remote, endpoint, &payload); err != nil {
		return nil, err
	}
	revisions := make([]string, 0, len(payload.Revisions))
	for _, entry := range payload.Revisions {
		revisions = append(revisions, entry.Revision)
	}
	return revisions, nil
}

func (a *CatalogAdapter) LatestRecipeRevision(ctx context.Context, ref types.PackageReference, remote *types.Remote) (types.PackageReference, error) {
	if remote == nil {
		return a.CLI.LocalLatestRecipeRevision(ctx, ref)
	}
	endpoint := recipeEndpoint(*remote, ref) + "/latest"
	var payload struct {
		Revision string `json:"revision"`
	}
	if err := a.getJSON(ctx, *remote, endpoint, &payload); err != nil {
		return types.PackageReference{}, err
	}
	if payload.Revision == "" {
		return types.PackageReference{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no revisions of %s on remote %s", ref.WithoutRevision(), remote.Name))
	}
	resolved := ref.WithoutRevision()
	resolved.Revision = payload.Revision
	return resolved, nil
}

// recipeEndpoint builds the v2 recipe URL. Empty user and channel render
// as the "_" placeholder, as the wire protocol requires.
func recipeEndpoint(remote types.Remote, ref types.PackageReference) string {
	user := ref.User
	if user == "" {
		user = "_"
	}
	channel := ref.Channel
	if channel == "" {
		channel = "_"
	}
	return fmt.Sprintf("%s/v2/conans/%s/%s/%s/%s",
		strings.TrimRight(remote.URL, "/"),
		url.PathEscape(ref.Name),
		url.PathEscape(ref.Version),
		url.PathEscape(user),
		url.PathEscape(channel),
	)
}

func (a *CatalogAdapter) getJSON(ctx context.Context, remote types.Remote, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create catalog request").
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
			WithMsg("catalog request failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("not found on remote " + remote.Name).
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("catalog request failed").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, endpoint, string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to decode catalog response").
			WithCause(err)
	}
	return nil
}

var _ ports.CatalogPort = (*CatalogAdapter)(nil)
