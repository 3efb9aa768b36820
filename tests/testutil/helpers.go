// Package testutil provides shared test helpers used across integration
// and unit test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"conan-bridge/internal/types"
)

// WriteRemotesFile materializes a remotes.json in home, in the on-disk
// format the registry adapter reads.
func WriteRemotesFile(t *testing.T, home string, remotes ...types.Remote) {
	t.Helper()
	type entry struct {
		Name      string `json:"name"`
		URL       string `json:"url"`
		VerifySSL bool   `json:"verify_ssl"`
	}
	entries := make([]entry, 0, len(remotes))
	for _, remote := range remotes {
		entries = append(entries, entry{Name: remote.Name, URL: remote.URL, VerifySSL: remote.VerifySSL})
	}
	data, err := json.MarshalIndent(map[string][]entry{"remotes": entries}, "", " ")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(home, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(home, "remotes.json"), data, 0o644))
}
