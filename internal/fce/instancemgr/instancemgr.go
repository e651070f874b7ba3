// Package instancemgr implements the per-entity-type identity→handle
// registry: two lookups of the same identity share one handle, and
// therefore one local cache.
package instancemgr

import (
	"sync"

	"github.com/bugielektrik/fieldcache/internal/fce/handle"
	"github.com/bugielektrik/fieldcache/internal/fce/identity"
)

// Manager is a per-type registry of identity to *handle.Handle.
type Manager struct {
	mu		sync.RWMutex
	handles		map[string]*handle.Handle
	newHandle	func(identity.ID) *handle.Handle
}

// New builds a Manager for one entity type. newHandle constructs a
// fresh handle bound to the given identity; between two calls to Clear
// it is invoked at most once per distinct identity (double-checked
// locking below).
func New(newHandle func(identity.ID) *handle.Handle) *Manager {
	return &Manager{
		handles:	make(map[string]*handle.Handle),
		newHandle:	newHandle,
	}
}

// Create returns the existing handle for id if one is registered,
// otherwise constructs and registers a new one. Idempotent: concurrent
// calls for the same id never observe two distinct handles.
func (m *Manager) Create(id identity.ID) *handle.Handle {
	key := id.Hex()

	m.mu.RLock()
	if h, ok := m.handles[key]; ok {
		m.mu.RUnlock()
		return h
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.handles[key]; ok {
		return h
	}
	h := m.newHandle(id)
	m.handles[key] = h
	return h
}

// Clear removes every registered handle. When purgeLocalCaches is true,
// every handle registered at the time of the call also has its local
// cache emptied in place, so callers holding a stale *handle.Handle
// reference observe the clear too. Handles already dropped by an
// earlier Clear(false) are no longer tracked and are not purged.
func (m *Manager) Clear(purgeLocalCaches bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if purgeLocalCaches {
		for _, h := range m.handles {
			h.ClearLocalCache()
		}
	}
	m.handles = make(map[string]*handle.Handle)
}

// Len reports how many identities currently have a live handle.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handles)
}
