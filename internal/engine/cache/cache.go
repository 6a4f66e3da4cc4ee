// Package cache implements the shared per-directory cache of loader results.
package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.trai.ch/denv/internal/core/domain"
	"go.trai.ch/denv/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

// Cache holds one entry per canonical directory key. Entries carry the base
// environment snapshot they were computed against; a lookup whose stored
// snapshot differs byte-for-byte from the current one is a miss and
// re-invokes the loader. Entries are replaced atomically under the lock, so
// readers never observe a torn entry.
type Cache struct {
	loader   ports.Loader
	logger   ports.Logger
	snapshot func() domain.Snapshot

	mu      sync.RWMutex
	entries map[string]*domain.Entry

	// requestGroup coalesces concurrent invocations. Query lookups share
	// the bare directory key so a stampede of binds for one directory
	// spawns a single loader process. Trust mutations use key+mode so an
	// allow is never folded into an in-flight query; user-facing events
	// are serialized, so cross-mode overlap does not arise in practice.
	requestGroup singleflight.Group
}

var _ ports.EntryCache = (*Cache)(nil)

// New creates a Cache invoking the given loader. The base environment is
// captured from the process environment at each lookup.
func New(loader ports.Loader, logger ports.Logger) *Cache {
	return &Cache{
		loader:   loader,
		logger:   logger,
		snapshot: domain.CaptureSnapshot,
		entries:  make(map[string]*domain.Entry),
	}
}

// WithSnapshotFunc overrides the base environment source. Used by tests to
// simulate base environment drift.
func (c *Cache) WithSnapshotFunc(fn func() domain.Snapshot) *Cache {
	c.snapshot = fn
	return c
}

// Lookup returns the cached entry for key when its stored base snapshot
// still equals the current base environment; otherwise it refreshes in
// query mode and returns the new entry.
func (c *Cache) Lookup(ctx context.Context, key string) *domain.Entry {
	// Read the base environment once so the staleness comparison sees a
	// single consistent snapshot.
	base := c.snapshot()

	if e := c.get(key); e != nil && e.Fresh(base) {
		return e
	}

	v, _, shared := c.requestGroup.Do(key, func() (any, error) {
		// A coalesced caller may have stored a fresh entry already.
		if e := c.get(key); e != nil && e.Fresh(base) {
			return e, nil
		}
		return c.invoke(ctx, key, base, domain.ModeQuery), nil
	})
	if shared {
		c.logger.Info(fmt.Sprintf("coalesced concurrent lookup for %s", key))
	}
	return v.(*domain.Entry)
}

// Refresh unconditionally invokes the loader with the given mode, replaces
// any existing entry for key, and returns the new entry.
func (c *Cache) Refresh(ctx context.Context, key string, mode domain.Mode) *domain.Entry {
	base := c.snapshot()

	v, _, _ := c.requestGroup.Do(key+"\x00"+string(mode), func() (any, error) {
		return c.invoke(ctx, key, base, mode), nil
	})
	return v.(*domain.Entry)
}

// Invalidate drops any cached entry for key.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Keys returns the directory keys currently cached, sorted.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (c *Cache) get(key string) *domain.Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[key]
}

func (c *Cache) invoke(ctx context.Context, key string, base domain.Snapshot, mode domain.Mode) *domain.Entry {
	res := c.loader.Invoke(ctx, key, base, mode)
	entry := domain.NewEntry(key, base, res)

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	return entry
}
