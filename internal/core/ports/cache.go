package ports

import (
	"context"

	"go.trai.ch/denv/internal/core/domain"
)

// EntryCache is the shared per-directory cache of loader results.
// Keys are canonical directory paths; all contexts rooted at the same
// directory share one entry.
//
//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type EntryCache interface {
	// Lookup returns the entry for key, invoking the loader in query mode
	// when no entry exists or the stored base snapshot no longer matches
	// the current base environment.
	Lookup(ctx context.Context, key string) *domain.Entry

	// Refresh unconditionally invokes the loader with the given mode and
	// replaces any existing entry for key.
	Refresh(ctx context.Context, key string, mode domain.Mode) *domain.Entry

	// Invalidate drops any cached entry for key; the next Lookup refreshes.
	Invalidate(key string)

	// Keys returns the canonical directory keys currently cached.
	Keys() []string
}
