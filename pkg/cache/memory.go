package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process cache backed by patrickmn/go-cache.
// Good for short-lived programs, tests, and single-process servers where
// cache survival across restarts doesn't matter.
type MemoryCache struct {
	store *gocache.Cache
}

// cleanupInterval controls how often expired entries are purged.
const cleanupInterval = 10 * time.Minute

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache() Cache {
	return &MemoryCache{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	data, ok := v.([]byte)
	if !ok {
		// Foreign entry type - treat as miss
		c.store.Delete(key)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores a value in the cache.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	expiration := ttl
	if ttl <= 0 {
		expiration = gocache.NoExpiration
	}
	c.store.Set(key, data, expiration)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// Close does nothing for memory cache.
func (c *MemoryCache) Close() error {
	return nil
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
