package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"conan-bridge/internal/types"
)

// localCacheKey is the top-level key `conan list --format=json` uses for
// the local cache.
const localCacheKey = "Local Cache"

type listRefEntry struct {
	Revisions map[string]listRevisionEntry `json:"revisions"`
}

type listRevisionEntry struct {
	Packages map[string]listPackageEntry `json:"packages"`
}

type listPackageEntry struct {
	Revisions map[string]json.RawMessage `json:"revisions"`
}

// LocalRecipeRevisions lists the recipe revisions present in the local
// cache for the unrevisioned reference.
func (a *ConanCLIAdapter) LocalRecipeRevisions(ctx context.Context, ref types.PackageReference) ([]string, error) {
	pattern := ref.WithoutRevision().String() + "#*"
	refs, err := a.localList(ctx, pattern)
	if err != nil {
		return nil, err
	}
	entry, ok := refs[ref.WithoutRevision().String()]
	if !ok {
		return nil, nil
	}
	return sortedRevisionKeys(entry.Revisions), nil
}

// LocalPackageRevisions lists the package revisions present in the local
// cache for one binary reference. The recipe revision must be resolved.
func (a *ConanCLIAdapter) LocalPackageRevisions(ctx context.Context, bref types.BinaryReference) ([]string, error) {
	if !bref.Ref.HasRevision() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package revision listing requires a resolved recipe revision")
	}
	pattern := fmt.Sprintf("%s:%s#*", bref.Ref.String(), bref.PackageID)
	refs, err := a.localList(ctx, pattern)
	if err != nil {
		return nil, err
	}
	entry, ok := refs[bref.Ref.WithoutRevision().String()]
	if !ok {
		return nil, nil
	}
	revision, ok := entry.Revisions[bref.Ref.Revision]
	if !ok {
		return nil, nil
	}
	pkg, ok := revision.Packages[bref.PackageID]
	if !ok {
		return nil, nil
	}
	revisions := make([]string, 0, len(pkg.Revisions))
	for key := range pkg.Revisions {
		revisions = append(revisions, key)
	}
	sort.Strings(revisions)
	return revisions, nil
}

// LocalLatestRecipeRevision resolves the latest recipe revision in the
// local cache.
func (a *ConanCLIAdapter) LocalLatestRecipeRevision(ctx context.Context, ref types.PackageReference) (types.PackageReference, error) {
	pattern := ref.WithoutRevision().String() + "#latest"
	refs, err := a.localList(ctx, pattern)
	if err != nil {
		return types.PackageReference{}, err
	}
	entry, ok := refs[ref.WithoutRevision().String()]
	if !ok || len(entry.Revisions) == 0 {
		return types.PackageReference{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no revisions of %s in local cache", ref.WithoutRevision()))
	}
	resolved := ref.WithoutRevision()
	for revision := range entry.Revisions {
		resolved.Revision = revision
		break
	}
	return resolved, nil
}

// localList runs `conan list` and decodes the local cache section. Ref
// entries that fail to decode (error markers, unexpected shapes) are
// skipped rather than failing the probe.
func (a *ConanCLIAdapter) localList(ctx context.Context, pattern string) (map[string]listRefEntry, error) {
	output, err := a.run(ctx, "", "list", pattern, "--format=json")
	if err != nil {
		return nil, err
	}
	var payload map[string]map[string]json.RawMessage
	if err := json.Unmarshal(output, &payload); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse conan list output").
			WithCause(err)
	}
	refs := map[string]listRefEntry{}
	for ref, raw := range payload[localCacheKey] {
		if ref == "error" {
			continue
		}
		var entry listRefEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		refs[ref] = entry
	}
	return refs, nil
}

func sortedRevisionKeys(revisions map[string]listRevisionEntry) []string {
	keys := make([]string, 0, len(revisions))
	for key := range revisions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
