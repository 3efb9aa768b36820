package core

import (
	"context"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"conan-bridge/internal/ports"
	"conan-bridge/internal/types"
)

const defaultProbeRetries = 2
const defaultProbeRetryDelay = 150 * time.Millisecond

// AvailabilityProber answers "does a revision exist?" for one reference
// against the local cache (nil remote) or one remote. Every probe
// failure is absorbed: a broken remote yields false, never an error, so
// probing one target cannot abort probing the rest.
type AvailabilityProber struct {
	Catalog ports.CatalogPort
	// Retries is the number of extra attempts after a transient
	// transport failure; the delay doubles between attempts.
	Retries    int
	RetryDelay time.Duration
}

func NewAvailabilityProber(catalog ports.CatalogPort) AvailabilityProber {
	return AvailabilityProber{
		Catalog:    catalog,
		Retries:    defaultProbeRetries,
		RetryDelay: defaultProbeRetryDelay,
	}
}

// RecipeAvailable probes at the unrevisioned reference level: any
// non-empty revision listing means the recipe exists.
func (p AvailabilityProber) RecipeAvailable(ctx context.Context, ref types.PackageReference, remote *types.Remote) bool {
	var revisions []string
	err := p.withRetry(ctx, func() error {
		var probeErr error
		revisions, probeErr = p.Catalog.RecipeRevisions(ctx, ref.WithoutRevision(), remote)
		return probeErr
	})
	if err != nil {
		logProbeFailure(ctx, "recipe", ref.String(), remote, err)
		return false
	}
	return len(revisions) > 0
}

// BinaryAvailable resolves the reference to its latest revision when
// unset, then probes the revisions of the binary-level reference.
func (p AvailabilityProber) BinaryAvailable(ctx context.Context, ref types.PackageReference, packageID string, remote *types.Remote) bool {
	if packageID == "" {
		return false
	}
	resolved := ref
	if !resolved.HasRevision() {
		var latest types.PackageReference
		err := p.withRetry(ctx, func() error {
			var probeErr error
			latest, probeErr = p.Catalog.LatestRecipeRevision(ctx, ref.WithoutRevision(), remote)
			return probeErr
		})
		if err != nil {
			logProbeFailure(ctx, "latest revision", ref.String(), remote, err)
			return false
		}
		resolved = latest
	}

	bref := types.BinaryReference{Ref: resolved, PackageID: packageID}
	var revisions []string
	err := p.withRetry(ctx, func() error {
		var probeErr error
		revisions, probeErr = p.Catalog.PackageRevisions(ctx, bref, remote)
		return probeErr
	})
	if err != nil {
		logProbeFailure(ctx, "binary", bref.String(), remote, err)
		return false
	}
	return len(revisions) > 0
}

// withRetry retries transient failures (internal/transport errors) with
// a doubling delay. Definitive answers such as not-found return
// immediately.
func (p AvailabilityProber) withRetry(ctx context.Context, fn func() error) error {
	attempts := p.Retries + 1
	if attempts < 1 {
		attempts = 1
	}
	delay := p.RetryDelay
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errbuilder.CodeOf(lastErr) != errbuilder.CodeInternal || attempt == attempts-1 {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return lastErr
}

func logProbeFailure(ctx context.Context, kind string, ref string, remote *types.Remote, err error) {
	target := "local cache"
	if remote != nil {
		target = remote.Name
	}
	log.Ctx(ctx).Debug().
		Err(err).
		Str("probe", kind).
		Str("ref", ref).
		Str("target", target).
		Msg("availability probe failed")
}
