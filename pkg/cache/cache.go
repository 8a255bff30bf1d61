// Package cache provides pluggable response caching for API clients.
//
// A [Cache] stores opaque byte payloads under string keys with a
// per-entry TTL. Backends exist for different deployment shapes:
//
//   - [FileCache]: file-based storage for CLI usage
//   - [MemoryCache]: in-process storage for short-lived programs and tests
//   - [RedisCache]: Redis-backed storage for shared deployments
//   - [MongoCache]: MongoDB-backed storage where a document store is
//     already part of the deployment
//   - [NullCache]: no-op backend to disable caching
//
// Keys are hashed before hitting backend storage (see [Hash]), so
// arbitrary key strings are safe. Only read-style API responses belong
// in the cache; state-changing calls must always reach the origin.
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns (nil, false, nil) on a miss; expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value in the cache with the given TTL.
	// A TTL of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value from the cache. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
