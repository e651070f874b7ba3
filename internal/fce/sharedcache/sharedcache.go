// Package sharedcache abstracts the remote key/value store sitting
// between the local cache and the authoritative store.
// Every operation may fail independently; the handle package treats any
// error here as a miss, never a hard failure.
package sharedcache

import "context"

// Client is the shared-cache tier's contract. The redis-backed
// implementation in this package and any fake used in tests must both
// satisfy it.
type Client interface {
	// Get fetches one key. ok is false on a miss or any client error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// MGet fetches many keys, preserving order; a missing key's slot
	// reports ok=false.
	MGet(ctx context.Context, keys []string) ([]Entry, error)
	// SetEX writes one key with the given TTL.
	SetEX(ctx context.Context, key, value string, ttl int) error
	// MSetEX writes many keys in one round trip, all sharing one TTL.
	MSetEX(ctx context.Context, values map[string]string, ttl int) error
	// Exists counts how many of keys are present.
	Exists(ctx context.Context, keys ...string) (int64, error)
	// Del deletes keys, returning how many were removed.
	Del(ctx context.Context, keys ...string) (int64, error)
	// Keys enumerates keys matching a wildcard pattern.
	Keys(ctx context.Context, pattern string) ([]string, error)
	// Ready reports whether the store is currently reachable, so the
	// handle can skip this tier entirely rather than stall on it.
	Ready(ctx context.Context) bool
	// Close releases the underlying connection pool.
	Close() error
}

// Entry is one slot of an MGet response.
type Entry struct {
	Key	string
	Value	string
	OK	bool
}
