// Package session binds contexts (editing sessions) to directory
// environments and drives the per-context status state machine.
package session

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/denv/internal/core/domain"
	"go.trai.ch/denv/internal/core/ports"
	"go.trai.ch/zerr"
)

// binding associates one context with a directory key and carries the
// context-local overlay. Bindings hold the key only, never the cache entry,
// so their lifetime is decoupled from the cache's.
type binding struct {
	dirKey  string
	status  domain.Status
	applied domain.Diff
	base    domain.Snapshot
	message string
}

// Manager is the context binding layer. Overlay application and removal is
// scoped strictly to the requesting context; the shared base environment
// snapshot and sibling overlays are never touched.
type Manager struct {
	cache  ports.EntryCache
	logger ports.Logger

	mu       sync.RWMutex
	bindings map[string]*binding
}

// NewManager creates a Manager over the given entry cache.
func NewManager(cache ports.EntryCache, logger ports.Logger) *Manager {
	return &Manager{
		cache:    cache,
		logger:   logger,
		bindings: make(map[string]*binding),
	}
}

// Bind resolves dir to its canonical key, looks it up in the cache and
// adopts the outcome for the context. Rebinding an already-bound context
// replaces its previous binding.
func (m *Manager) Bind(ctx context.Context, contextID, dir string) (domain.Status, error) {
	key, err := domain.CanonicalKey(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve directory")
	}

	entry := m.cache.Lookup(ctx, key)
	return m.adopt(contextID, key, entry), nil
}

// Unbind removes the context's overlay and discards the binding. The shared
// cache entry is left untouched.
func (m *Manager) Unbind(contextID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bindings[contextID]; !ok {
		return zerr.With(domain.ErrContextNotFound, "context", contextID)
	}
	delete(m.bindings, contextID)
	return nil
}

// Allow records the directory's configuration as trusted, then re-adopts
// the refreshed outcome for this context only. Siblings sharing the
// directory observe the replacement lazily on their own next lookup.
func (m *Manager) Allow(ctx context.Context, contextID string) (domain.Status, error) {
	return m.refresh(ctx, contextID, domain.ModeAllow)
}

// Deny revokes trust for the directory's configuration, then re-adopts the
// refreshed outcome for this context only.
func (m *Manager) Deny(ctx context.Context, contextID string) (domain.Status, error) {
	return m.refresh(ctx, contextID, domain.ModeDeny)
}

// Reload forces a refresh of the context's directory and re-adopts the
// outcome for this context. Propagation to sibling contexts is pull-based.
func (m *Manager) Reload(ctx context.Context, contextID string) (domain.Status, error) {
	return m.refresh(ctx, contextID, domain.ModeQuery)
}

func (m *Manager) refresh(ctx context.Context, contextID string, mode domain.Mode) (domain.Status, error) {
	key, err := m.DirectoryKey(contextID)
	if err != nil {
		return "", err
	}

	entry := m.cache.Refresh(ctx, key, mode)
	return m.adopt(contextID, key, entry), nil
}

// Status returns the context's current trust state.
func (m *Manager) Status(contextID string) (domain.Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bindings[contextID]
	if !ok {
		return "", zerr.With(domain.ErrContextNotFound, "context", contextID)
	}
	return b.status, nil
}

// Diagnostic returns the loader's preserved failure text for a context in
// the error state, and the empty string otherwise.
func (m *Manager) Diagnostic(contextID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bindings[contextID]
	if !ok {
		return "", zerr.With(domain.ErrContextNotFound, "context", contextID)
	}
	return b.message, nil
}

// DirectoryKey returns the canonical directory key the context is bound to.
func (m *Manager) DirectoryKey(contextID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bindings[contextID]
	if !ok {
		return "", zerr.With(domain.ErrContextNotFound, "context", contextID)
	}
	return b.dirKey, nil
}

// Environ returns the context's effective environment: the base snapshot
// the overlay was computed against with the applied diff on top. Readers
// never observe a partially applied diff; the overlay is replaced as a
// single value under the lock.
func (m *Manager) Environ(contextID string) (domain.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bindings[contextID]
	if !ok {
		return nil, zerr.With(domain.ErrContextNotFound, "context", contextID)
	}
	if b.applied == nil {
		return b.base, nil
	}
	return b.base.Apply(b.applied), nil
}

// Applied returns the overlay currently applied for the context; nil when
// the context has none.
func (m *Manager) Applied(contextID string) (domain.Diff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bindings[contextID]
	if !ok {
		return nil, zerr.With(domain.ErrContextNotFound, "context", contextID)
	}
	return b.applied, nil
}

// adopt drives the status state machine from the entry's outcome. A success
// applies the entry's diff as the context overlay; every other outcome
// rolls any previous overlay back unconditionally, so an error context
// never retains a stale overlay.
func (m *Manager) adopt(contextID, key string, entry *domain.Entry) domain.Status {
	status := domain.StatusFor(entry.Outcome)

	b := &binding{
		dirKey:  key,
		status:  status,
		base:    entry.Base,
		message: entry.Message,
	}
	if entry.Outcome == domain.OutcomeSuccess {
		b.applied = entry.Diff
	}

	m.mu.Lock()
	m.bindings[contextID] = b
	m.mu.Unlock()

	m.logger.Info(fmt.Sprintf("context %s: %s (%s)", contextID, status, key))
	return status
}
