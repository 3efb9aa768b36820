package core

import (
	"context"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"conan-bridge/internal/types"
)

type fakeCatalog struct {
	recipeRevisions  map[string][]string
	packageRevisions map[string][]string
	latest           map[string]string

	recipeErr  error
	packageErr error
	latestErr  error

	// recipeErrCount fails the first N recipe queries, then succeeds.
	recipeErrCount int

	recipeCalls  []string
	packageCalls []string
}

func (f *fakeCatalog) RecipeRevisions(_ context.Context, ref types.PackageReference, _ *types.Remote) ([]string, error) {
	f.recipeCalls = append(f.recipeCalls, ref.String())
	if f.recipeErrCount > 0 {
		f.recipeErrCount--
		return nil, transportError()
	}
	if f.recipeErr != nil {
		return nil, f.recipeErr
	}
	return f.recipeRevisions[ref.String()], nil
}

func (f *fakeCatalog) PackageRevisions(_ context.Context, bref types.BinaryReference, _ *types.Remote) ([]string, error) {
	f.packageCalls = append(f.packageCalls, bref.String())
	if f.packageErr != nil {
		return nil, f.packageErr
	}
	return f.packageRevisions[bref.String()], nil
}

func (f *fakeCatalog) LatestRecipeRevision(_ context.Context, ref types.PackageReference, _ *types.Remote) (types.PackageReference, error) {
	if f.latestErr != nil {
		return types.PackageReference{}, f.latestErr
	}
	revision, ok := f.latest[ref.String()]
	if !ok {
		return types.PackageReference{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no revisions")
	}
	resolved := ref
	resolved.Revision = revision
	return resolved, nil
}

func transportError() error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("connection refused")
}

func mustRef(t *testing.T, value string) types.PackageReference {
	t.Helper()
	ref, err := types.ParsePackageReference(value)
	require.NoError(t, err)
	return ref
}

func newTestProber(catalog *fakeCatalog) AvailabilityProber {
	prober := NewAvailabilityProber(catalog)
	prober.RetryDelay = time.Millisecond
	return prober
}

func TestRecipeProbeClearsRevision(t *testing.T) {
	catalog := &fakeCatalog{
		recipeRevisions: map[string][]string{"zlib/1.3.1": {"rev1"}},
	}
	prober := newTestProber(catalog)

	available := prober.RecipeAvailable(t.Context(), mustRef(t, "zlib/1.3.1#deadbeef"), nil)
	require.True(t, available)
	require.Equal(t, []string{"zlib/1.3.1"}, catalog.recipeCalls)
}

func TestRecipeProbeEmptyRevisionsMeansAbsent(t *testing.T) {
	catalog := &fakeCatalog{recipeRevisions: map[string][]string{}}
	prober := newTestProber(catalog)

	require.False(t, prober.RecipeAvailable(t.Context(), mustRef(t, "zlib/1.3.1"), nil))
}

func TestRecipeProbeAbsorbsErrors(t *testing.T) {
	catalog := &fakeCatalog{recipeErr: errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("404")}
	prober := newTestProber(catalog)

	require.False(t, prober.RecipeAvailable(t.Context(), mustRef(t, "zlib/1.3.1"), nil))
}

func TestRecipeProbeRetriesTransientFailures(t *testing.T) {
	catalog := &fakeCatalog{
		recipeRevisions: map[string][]string{"zlib/1.3.1": {"rev1"}},
		recipeErrCount:  2,
	}
	prober := newTestProber(catalog)

	require.True(t, prober.RecipeAvailable(t.Context(), mustRef(t, "zlib/1.3.1"), nil))
	require.Len(t, catalog.recipeCalls, 3)
}

func TestRecipeProbeGivesUpAfterRetries(t *testing.T) {
	catalog := &fakeCatalog{
		recipeRevisions: map[string][]string{"zlib/1.3.1": {"rev1"}},
		recipeErrCount:  5,
	}
	prober := newTestProber(catalog)

	require.False(t, prober.RecipeAvailable(t.Context(), mustRef(t, "zlib/1.3.1"), nil))
	require.Len(t, catalog.recipeCalls, 3)
}

func TestBinaryProbeResolvesLatestRevision(t *testing.T) {
	catalog := &fakeCatalog{
		latest: map[string]string{"zlib/1.3.1": "rev9"},
		packageRevisions: map[string][]string{
			"zlib/1.3.1#rev9:abc123": {"prev1"},
		},
	}
	prober := newTestProber(catalog)

	available := prober.BinaryAvailable(t.Context(), mustRef(t, "zlib/1.3.1"), "abc123", nil)
	require.True(t, available)
	require.Equal(t, []string{"zlib/1.3.1#rev9:abc123"}, catalog.packageCalls)
}

func TestBinaryProbeKeepsExplicitRevision(t *testing.T) {
	catalog := &fakeCatalog{
		packageRevisions: map[string][]string{
			"zlib/1.3.1#rev2:abc123": {"prev1"},
		},
	}
	prober := newTestProber(catalog)

	available := prober.BinaryAvailable(t.Context(), mustRef(t, "zlib/1.3.1#rev2"), "abc123", nil)
	require.True(t, available)
	require.Equal(t, []string{"zlib/1.3.1#rev2:abc123"}, catalog.packageCalls)
}

func TestBinaryProbeFailsWhenLatestRevisionUnresolvable(t *testing.T) {
	catalog := &fakeCatalog{latest: map[string]string{}}
	prober := newTestProber(catalog)

	require.False(t, prober.BinaryAvailable(t.Context(), mustRef(t, "zlib/1.3.1"), "abc123", nil))
	require.Empty(t, catalog.packageCalls)
}

func TestBinaryProbeWithoutPackageID(t *testing.T) {
	catalog := &fakeCatalog{}
	prober := newTestProber(catalog)

	require.False(t, prober.BinaryAvailable(t.Context(), mustRef(t, "zlib/1.3.1"), "", nil))
	require.Empty(t, catalog.packageCalls)
}
