package api

import (
	"fmt"
	"net/http"

	"conan-bridge/internal/app"
	"conan-bridge/internal/types"
)

type rootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type statusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type profileResponse struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	IsLocal bool   `json:"isLocal"`
}

type remoteResponse struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	VerifySSL    bool   `json:"verify_ssl"`
	RequiresAuth bool   `json:"requires_auth"`
}

type installRequest struct {
	WorkspacePath string `json:"workspace_path"`
	HostProfile   string `json:"host_profile"`
	BuildProfile  string `json:"build_profile"`
	BuildMissing  *bool  `json:"build_missing"`
}

type installPackageRequest struct {
	PackageRef   string `json:"package_ref"`
	HostProfile  string `json:"host_profile"`
	BuildProfile string `json:"build_profile"`
	BuildMissing *bool  `json:"build_missing"`
}

type uploadLocalRequest struct {
	PackageRef string `json:"package_ref"`
	PackageID  string `json:"package_id"`
	RemoteName string `json:"remote_name"`
	Force      bool   `json:"force"`
}

type createProfileRequest struct {
	Name         string            `json:"name"`
	Detect       *bool             `json:"detect"`
	Settings     map[string]string `json:"settings"`
	ProfilesPath string            `json:"profiles_path"`
}

type addRemoteRequest struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	VerifySSL *bool  `json:"verify_ssl"`
}

type loginRemoteRequest struct {
	Name     string `json:"name"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type removeRemoteRequest struct {
	Name string `json:"name"`
}

type createProjectRequest struct {
	WorkspacePath string            `json:"workspace_path"`
	HostProfile   string            `json:"host_profile"`
	BuildProfile  string            `json:"build_profile"`
	Options       map[string]string `json:"options"`
}

type scaffoldProjectRequest struct {
	WorkspacePath string `json:"workspace_path"`
	Template      string `json:"template"`
	Name          string `json:"name"`
	Version       string `json:"version"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, rootResponse{
		Message: "conan-bridge API server",
		Status:  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handlePackageStatus(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	packages, err := s.service.PackageStatus(r.Context(), app.PackageStatusRequest{
		WorkspacePath: query.Get("workspace_path"),
		HostProfile:   query.Get("host_profile"),
		BuildProfile:  query.Get("build_profile"),
		Remote:        query.Get("remote"),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, packages)
}

func (s *Server) handleInstall(w http.ResponseWriter, r *http.Request) {
	var req installRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.Install(r.Context(), app.InstallRequest{
		WorkspacePath: req.WorkspacePath,
		HostProfile:   req.HostProfile,
		BuildProfile:  req.BuildProfile,
		BuildMissing:  boolOrDefault(req.BuildMissing, true),
	}); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{
		Message: fmt.Sprintf("installation completed with profiles: host=%s, build=%s", req.HostProfile, req.BuildProfile),
		Status:  "completed",
	})
}

func (s *Server) handleInstallPackage(w http.ResponseWriter, r *http.Request) {
	var req installPackageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.InstallPackage(r.Context(), app.InstallPackageRequest{
		PackageRef:   req.PackageRef,
		HostProfile:  req.HostProfile,
		BuildProfile: req.BuildProfile,
		BuildMissing: boolOrDefault(req.BuildMissing, true),
	}); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{
		Message: fmt.Sprintf("installation of %s completed", req.PackageRef),
		Status:  "completed",
	})
}

func (s *Server) handleUploadLocal(w http.ResponseWriter, r *http.Request) {
	var req uploadLocalRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.UploadLocal(r.Context(), app.UploadLocalRequest{
		PackageRef: req.PackageRef,
		PackageID:  req.PackageID,
		RemoteName: req.RemoteName,
		Force:      req.Force,
	}); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{
		Message: fmt.Sprintf("uploaded %s to %s", req.PackageRef, req.RemoteName),
		Status:  "completed",
	})
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.service.ListProfiles(r.Context(), r.URL.Query().Get("local_profiles_path"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]profileResponse, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, toProfileResponse(profile))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	profile, err := s.service.CreateProfile(r.Context(), app.CreateProfileRequest{
		Name:         req.Name,
		Detect:       boolOrDefault(req.Detect, true),
		Settings:     req.Settings,
		ProfilesPath: req.ProfilesPath,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Profile '%s' created successfully", profile.Name),
		"path":    profile.Path,
	})
}

func (s *Server) handleListRemotes(w http.ResponseWriter, r *http.Request) {
	infos, err := s.service.ListRemotes(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]remoteResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, toRemoteResponse(info))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddRemote(w http.ResponseWriter, r *http.Request) {
	var req addRemoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	info, err := s.service.AddRemote(r.Context(), app.AddRemoteRequest{
		Name:      req.Name,
		URL:       req.URL,
		VerifySSL: boolOrDefault(req.VerifySSL, true),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"requires_auth": info.RequiresAuth,
	})
}

func (s *Server) handleLoginRemote(w http.ResponseWriter, r *http.Request) {
	var req loginRemoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.LoginRemote(r.Context(), app.LoginRemoteRequest{
		Name:     req.Name,
		User:     req.User,
		Password: req.Password,
	}); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Logged in to remote '%s' successfully", req.Name),
	})
}

func (s *Server) handleRemoveRemote(w http.ResponseWriter, r *http.Request) {
	var req removeRemoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.RemoveRemote(r.Context(), req.Name); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.service.LoadSettings(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.service.Home())
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.CreateProject(r.Context(), app.CreateProjectRequest{
		WorkspacePath: req.WorkspacePath,
		HostProfile:   req.HostProfile,
		BuildProfile:  req.BuildProfile,
		Options:       req.Options,
	}); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{
		Message: "project created at " + req.WorkspacePath,
		Status:  "completed",
	})
}

func (s *Server) handleScaffoldProject(w http.ResponseWriter, r *http.Request) {
	var req scaffoldProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if err := s.service.ScaffoldProject(r.Context(), app.ScaffoldProjectRequest{
		WorkspacePath: req.WorkspacePath,
		Template:      req.Template,
		Name:          req.Name,
		Version:       req.Version,
	}); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, statusResponse{
		Message: fmt.Sprintf("project %s created at %s using template %s", req.Name, req.WorkspacePath, req.Template),
		Status:  "completed",
	})
}

func toProfileResponse(profile types.Profile) profileResponse {
	return profileResponse{Name: profile.Name, Path: profile.Path, IsLocal: profile.Local}
}

func toRemoteResponse(info app.RemoteInfo) remoteResponse {
	return remoteResponse{
		Name:         info.Remote.Name,
		URL:          info.Remote.URL,
		VerifySSL:    info.Remote.VerifySSL,
		RequiresAuth: info.RequiresAuth,
	}
}

// boolOrDefault applies the wire default for optional boolean fields.
func boolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}
