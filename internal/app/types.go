package app

import "conan-bridge/internal/types"

type PackageStatusRequest struct {
	WorkspacePath string
	HostProfile   string
	BuildProfile  string
	// Remote limits the probed remotes to the named one plus the
	// fallback. Empty means every configured remote.
	Remote string
}

type InstallRequest struct {
	WorkspacePath string
	HostProfile   string
	BuildProfile  string
	BuildMissing  bool
}

type InstallPackageRequest struct {
	PackageRef   string
	HostProfile  string
	BuildProfile string
	BuildMissing bool
}

type UploadLocalRequest struct {
	PackageRef string
	PackageID  string
	RemoteName string
	Force      bool
}

type CreateProfileRequest struct {
	Name     string
	Detect   bool
	Settings map[string]string
	// ProfilesPath stores the profile in a workspace-local directory
	// instead of the home profiles folder.
	ProfilesPath string
}

// RemoteInfo is a configured remote plus its recomputed authentication
// requirement.
type RemoteInfo struct {
	Remote       types.Remote
	RequiresAuth bool
}

type AddRemoteRequest struct {
	Name      string
	URL       string
	VerifySSL bool
}

type LoginRemoteRequest struct {
	Name     string
	User     string
	Password string
}

type CreateProjectRequest struct {
	WorkspacePath string
	HostProfile   string
	BuildProfile  string
	Options       map[string]string
}

type ScaffoldProjectRequest struct {
	WorkspacePath string
	Template      string
	Name          string
	Version       string
}
