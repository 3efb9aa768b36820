package ports

// WorkspacePort locates the manifest inside a workspace directory.
type WorkspacePort interface {
	// FindManifest returns the absolute path of conanfile.txt or
	// conanfile.py, preferring conanfile.txt, or a not-found error.
	FindManifest(dir string) (string, error)
}
