package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"conan-bridge/internal/types"
)

type fakeRegistry struct {
	remotes []types.Remote
}

func (f fakeRegistry) List(_ context.Context) ([]types.Remote, error) {
	return f.remotes, nil
}

func (f fakeRegistry) Get(_ context.Context, name string) (types.Remote, error) {
	for _, remote := range f.remotes {
		if remote.Name == name {
			return remote, nil
		}
	}
	return types.Remote{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("remote %q does not exist", name))
}

type fakeCredentials struct {
	// failures maps remote name to the credential check error.
	failures map[string]error
	checked  []string
}

func (f *fakeCredentials) CheckCredentials(_ context.Context, remote types.Remote) error {
	f.checked = append(f.checked, remote.Name)
	if err, ok := f.failures[remote.Name]; ok {
		return err
	}
	return nil
}

func authError() error {
	return errbuilder.New().
		WithCode(errbuilder.CodePermissionDenied).
		WithMsg("authentication required")
}

func anonymousOKError() error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("no credential endpoint")
}

func testRemotes(names ...string) []types.Remote {
	remotes := make([]types.Remote, 0, len(names))
	for _, name := range names {
		remotes = append(remotes, types.Remote{Name: name, URL: "https://" + name + ".example", VerifySSL: true})
	}
	return remotes
}

func remoteNames(remotes []types.Remote) []string {
	names := make([]string, 0, len(remotes))
	for _, remote := range remotes {
		names = append(names, remote.Name)
	}
	return names
}

func TestSelectAllRemotesPreservesConfiguredOrder(t *testing.T) {
	selector := NewRemoteSelector(
		fakeRegistry{remotes: testRemotes("acme", "conancenter", "internal")},
		&fakeCredentials{},
	)

	selected, err := selector.Select(t.Context(), "")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"acme", "conancenter", "internal"}, remoteNames(selected)); diff != "" {
		t.Fatalf("unexpected selection order (-want +got):\n%s", diff)
	}
}

func TestSelectNamedRemoteAppendsFallback(t *testing.T) {
	selector := NewRemoteSelector(
		fakeRegistry{remotes: testRemotes("conancenter", "acme")},
		&fakeCredentials{},
	)

	selected, err := selector.Select(t.Context(), "acme")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"acme", "conancenter"}, remoteNames(selected)); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}
}

func TestSelectFallbackIsNotDuplicated(t *testing.T) {
	selector := NewRemoteSelector(
		fakeRegistry{remotes: testRemotes("conancenter", "acme")},
		&fakeCredentials{},
	)

	selected, err := selector.Select(t.Context(), "conancenter")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"conancenter"}, remoteNames(selected)); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}
}

func TestSelectMissingFallbackIsTolerated(t *testing.T) {
	selector := NewRemoteSelector(
		fakeRegistry{remotes: testRemotes("acme")},
		&fakeCredentials{},
	)

	selected, err := selector.Select(t.Context(), "acme")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"acme"}, remoteNames(selected)); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}
}

func TestSelectUnknownRemoteIsFatal(t *testing.T) {
	selector := NewRemoteSelector(
		fakeRegistry{remotes: testRemotes("conancenter")},
		&fakeCredentials{},
	)

	_, err := selector.Select(t.Context(), "doesnotexist")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestSelectDropsUnauthenticatedRemotesInPlace(t *testing.T) {
	creds := &fakeCredentials{failures: map[string]error{"private": authError()}}
	selector := NewRemoteSelector(
		fakeRegistry{remotes: testRemotes("acme", "private", "conancenter")},
		creds,
	)

	selected, err := selector.Select(t.Context(), "")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"acme", "conancenter"}, remoteNames(selected)); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"acme", "private", "conancenter"}, creds.checked)
}

func TestSelectTreatsMissingCredentialEndpointAsAnonymous(t *testing.T) {
	creds := &fakeCredentials{failures: map[string]error{"conancenter": anonymousOKError()}}
	selector := NewRemoteSelector(
		fakeRegistry{remotes: testRemotes("conancenter")},
		creds,
	)

	selected, err := selector.Select(t.Context(), "")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"conancenter"}, remoteNames(selected)); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}
}

func TestSelectCustomFallback(t *testing.T) {
	selector := NewRemoteSelector(
		fakeRegistry{remotes: testRemotes("mirror", "acme")},
		&fakeCredentials{},
	)
	selector.Fallback = "mirror"

	selected, err := selector.Select(t.Context(), "acme")
	require.NoError(t, err)
	if diff := cmp.Diff([]string{"acme", "mirror"}, remoteNames(selected)); diff != "" {
		t.Fatalf("unexpected selection (-want +got):\n%s", diff)
	}
}
