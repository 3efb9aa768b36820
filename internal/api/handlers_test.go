package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"conan-bridge/internal/app"
	"conan-bridge/internal/ports"
	"conan-bridge/internal/types"
)

type fakeProfileStore struct {
	profiles []types.Profile
	created  []ports.CreateProfileRequest
}

func (f *fakeProfileStore) List(_ context.Context, _ string) ([]types.Profile, error) {
	return f.profiles, nil
}

func (f *fakeProfileStore) Get(_ context.Context, name string) (types.Profile, error) {
	for _, profile := range f.profiles {
		if profile.Name == name {
			return profile, nil
		}
	}
	return types.Profile{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("profile not found: " + name)
}

func (f *fakeProfileStore) Create(_ context.Context, req ports.CreateProfileRequest) (types.Profile, error) {
	f.created = append(f.created, req)
	return types.Profile{Name: req.Name, Path: "/home/profiles/" + req.Name}, nil
}

type fakeRegistry struct {
	remotes []types.Remote
	added   []types.Remote
	removed []string
	logins  []string
}

func (f *fakeRegistry) List(_ context.Context) ([]types.Remote, error) {
	return f.remotes, nil
}

func (f *fakeRegistry) Get(_ context.Context, name string) (types.Remote, error) {
	for _, remote := range f.remotes {
		if remote.Name == name {
			return remote, nil
		}
	}
	return types.Remote{}, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("remote not found: " + name)
}

func (f *fakeRegistry) Add(_ context.Context, remote types.Remote) error {
	f.added = append(f.added, remote)
	return nil
}

func (f *fakeRegistry) Remove(_ context.Context, name string) error {
	f.removed = append(f.removed, name)
	return nil
}

func (f *fakeRegistry) Login(_ context.Context, name string, _ string, _ string) error {
	f.logins = append(f.logins, name)
	return nil
}

type fakeCredentials struct {
	failing map[string]error
}

func (f *fakeCredentials) CheckCredentials(_ context.Context, remote types.Remote) error {
	return f.failing[remote.Name]
}

type fakeInstaller struct {
	installs []ports.InstallSpec
	refs     []ports.InstallReferenceSpec
	err      error
}

func (f *fakeInstaller) Install(_ context.Context, spec ports.InstallSpec) error {
	f.installs = append(f.installs, spec)
	return f.err
}

func (f *fakeInstaller) InstallReference(_ context.Context, spec ports.InstallReferenceSpec) error {
	f.refs = append(f.refs, spec)
	return f.err
}

type fakeWorkspace struct {
	manifest string
}

func (f fakeWorkspace) FindManifest(dir string) (string, error) {
	if f.manifest == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no conanfile found in workspace directory: " + dir)
	}
	return f.manifest, nil
}

type fakeSettings struct {
	settings types.Settings
	err      error
}

func (f fakeSettings) Load(_ context.Context) (types.Settings, error) {
	return f.settings, f.err
}

func testServer(service app.Service) *Server {
	return NewServer(service, "127.0.0.1:0")
}

func doRequest(t *testing.T, server *Server, method string, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	recorder := httptest.NewRecorder()
	server.Router().ServeHTTP(recorder, req)
	return recorder
}

func TestRootAndHealth(t *testing.T) {
	server := testServer(app.Service{})

	resp := doRequest(t, server, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var root rootResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &root))
	require.Equal(t, "running", root.Status)

	resp = doRequest(t, server, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"status": "healthy"}`, resp.Body.String())
}

func TestPackageStatusMissingParams(t *testing.T) {
	server := testServer(app.Service{})

	resp := doRequest(t, server, http.MethodGet, "/packages?workspace_path=/tmp/ws", "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Contains(t, body.Detail, "profiles are required")
}

func TestPackageStatusMissingManifest(t *testing.T) {
	service := app.Service{
		Workspace: fakeWorkspace{},
		Profiles:  &fakeProfileStore{},
	}
	server := testServer(service)

	resp := doRequest(t, server, http.MethodGet,
		"/packages?workspace_path=/tmp/ws&host_profile=default&build_profile=default", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Contains(t, body.Detail, "no conanfile found")
}

func TestListProfiles(t *testing.T) {
	service := app.Service{
		Profiles: &fakeProfileStore{profiles: []types.Profile{
			{Name: "default", Path: "/home/profiles/default"},
			{Name: "workspace", Path: "/ws/profiles/workspace", Local: true},
		}},
	}
	server := testServer(service)

	resp := doRequest(t, server, http.MethodGet, "/profiles?local_profiles_path=/ws/profiles", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var profiles []profileResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profiles))
	require.Len(t, profiles, 2)
	require.Equal(t, "default", profiles[0].Name)
	require.False(t, profiles[0].IsLocal)
	require.True(t, profiles[1].IsLocal)
}

func TestCreateProfileDefaultsToDetect(t *testing.T) {
	store := &fakeProfileStore{}
	server := testServer(app.Service{Profiles: store})

	resp := doRequest(t, server, http.MethodPost, "/profiles/create", `{"name": "default"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, store.created, 1)
	require.True(t, store.created[0].Detect)
	require.Contains(t, resp.Body.String(), "created successfully")
}

func TestCreateProfileRequiresName(t *testing.T) {
	server := testServer(app.Service{Profiles: &fakeProfileStore{}})

	resp := doRequest(t, server, http.MethodPost, "/profiles/create", `{"detect": true}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestListRemotesCarriesAuthFlag(t *testing.T) {
	registry := &fakeRegistry{remotes: []types.Remote{
		{Name: "conancenter", URL: "https://center2.conan.io", VerifySSL: true},
		{Name: "lab", URL: "https://conan.lab.internal", VerifySSL: true},
	}}
	credentials := &fakeCredentials{failing: map[string]error{
		"lab": errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg("authentication required for remote lab"),
	}}
	server := testServer(app.Service{Remotes: registry, Credentials: credentials})

	resp := doRequest(t, server, http.MethodGet, "/remotes", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var remotes []remoteResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &remotes))
	require.Len(t, remotes, 2)
	require.False(t, remotes[0].RequiresAuth)
	require.True(t, remotes[1].RequiresAuth)
}

func TestAddRemoteDefaultsVerifySSL(t *testing.T) {
	registry := &fakeRegistry{}
	server := testServer(app.Service{
		Remotes:     registry,
		RemoteAdmin: registry,
		Credentials: &fakeCredentials{},
	})

	resp := doRequest(t, server, http.MethodPost, "/remotes/add",
		`{"name": "lab", "url": "https://conan.lab.internal"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, registry.added, 1)
	require.True(t, registry.added[0].VerifySSL)
	require.JSONEq(t, `{"success": true, "requires_auth": false}`, resp.Body.String())
}

func TestLoginUnknownRemote(t *testing.T) {
	registry := &fakeRegistry{}
	server := testServer(app.Service{Remotes: registry, RemoteAdmin: registry})

	resp := doRequest(t, server, http.MethodPost, "/remotes/login",
		`{"name": "nope", "user": "u", "password": "p"}`)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Empty(t, registry.logins)
}

func TestRemoveRemote(t *testing.T) {
	registry := &fakeRegistry{remotes: []types.Remote{{Name: "lab"}}}
	server := testServer(app.Service{Remotes: registry, RemoteAdmin: registry})

	resp := doRequest(t, server, http.MethodPost, "/remotes/remove", `{"name": "lab"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, []string{"lab"}, registry.removed)
}

func TestInstallDecodesBody(t *testing.T) {
	installer := &fakeInstaller{}
	service := app.Service{
		Workspace: fakeWorkspace{manifest: "/tmp/ws/conanfile.txt"},
		Profiles: &fakeProfileStore{profiles: []types.Profile{
			{Name: "default", Path: "/home/profiles/default"},
		}},
		Installer: installer,
	}
	server := testServer(service)

	resp := doRequest(t, server, http.MethodPost, "/packages/install",
		`{"workspace_path": "/tmp/ws", "host_profile": "default", "build_profile": "default"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, installer.installs, 1)
	require.Equal(t, "/tmp/ws/conanfile.txt", installer.installs[0].ManifestPath)
	require.True(t, installer.installs[0].BuildMissing, "build_missing defaults to true")
}

func TestInstallMalformedBody(t *testing.T) {
	server := testServer(app.Service{})

	resp := doRequest(t, server, http.MethodPost, "/packages/install", `{"workspace_path": `)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "invalid request body")
}

func TestSettingsEndpoint(t *testing.T) {
	service := app.Service{Settings: fakeSettings{settings: types.Settings{
		Path: "/home/settings.yml",
		Arch: []string{"x86_64", "armv8"},
	}}}
	server := testServer(service)

	resp := doRequest(t, server, http.MethodGet, "/settings", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var settings types.Settings
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &settings))
	require.Equal(t, []string{"x86_64", "armv8"}, settings.Arch)
}

func TestConfigHome(t *testing.T) {
	server := testServer(app.Service{HomeDir: "/home/user/.conan2"})

	resp := doRequest(t, server, http.MethodGet, "/config/home", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `"/home/user/.conan2"`, resp.Body.String())
}

func TestGraphFailureMapsToInternal(t *testing.T) {
	installer := &fakeInstaller{err: errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("conan install failed")}
	service := app.Service{
		Workspace: fakeWorkspace{manifest: "/tmp/ws/conanfile.txt"},
		Profiles: &fakeProfileStore{profiles: []types.Profile{
			{Name: "default", Path: "/home/profiles/default"},
		}},
		Installer: installer,
	}
	server := testServer(service)

	resp := doRequest(t, server, http.MethodPost, "/packages/install",
		`{"workspace_path": "/tmp/ws", "host_profile": "default", "build_profile": "default"}`)
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	var body errorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Contains(t, body.Detail, "dependency graph resolution failed")
}
