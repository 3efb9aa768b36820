package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conan-bridge/internal/ports"
)

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

// FindManifest locates conanfile.txt or conanfile.py in dir, preferring
// conanfile.txt.
func (a WorkspaceAdapter) FindManifest(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace directory is empty")
	}
	for _, name := range []string{"conanfile.txt", "conanfile.py"} {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			absolute, err := filepath.Abs(candidate)
			if err != nil {
				return "", errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to resolve manifest path").
					WithCause(err)
			}
			return absolute, nil
		}
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("no conanfile found in workspace directory: %s", dir))
}

var _ ports.WorkspacePort = WorkspaceAdapter{}
