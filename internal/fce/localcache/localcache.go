// Package localcache implements the per-instance, in-memory tier held
// by every Entity Handle: a mapping from logical field name to
// in-memory value, with no eviction and no TTL. It is built on
// patrickmn/go-cache with per-entry expiration disabled, at per-field
// rather than per-entity granularity. Entries keep no insertion order;
// the type exposes no iteration over them.
package localcache

import (
	"github.com/patrickmn/go-cache"
)

// Cache is the local cache owned by a single Entity Handle. It is safe
// for concurrent use; callers do not need an external lock.
type Cache struct {
	c *cache.Cache
}

// New builds an empty local cache. Cleanup is disabled (0) since entries
// never expire on their own; they are only ever removed by Clear.
func New() *Cache {
	return &Cache{c: cache.New(cache.NoExpiration, 0)}
}

// Has reports whether field is present.
func (c *Cache) Has(field string) bool {
	_, found := c.c.Get(field)
	return found
}

// Get returns the cached value for field, if present.
func (c *Cache) Get(field string) (any, bool) {
	return c.c.Get(field)
}

// Set stores v for field with no expiration.
func (c *Cache) Set(field string, v any) {
	c.c.Set(field, v, cache.NoExpiration)
}

// SetMany stores every entry in values with no expiration.
func (c *Cache) SetMany(values map[string]any) {
	for field, v := range values {
		c.c.Set(field, v, cache.NoExpiration)
	}
}

// Clear removes one field, or every field when field is empty.
func (c *Cache) Clear(field string) {
	if field == "" {
		c.c.Flush()
		return
	}
	c.c.Delete(field)
}

// Len reports the number of cached fields.
func (c *Cache) Len() int {
	return c.c.ItemCount()
}
