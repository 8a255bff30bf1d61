// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about API calls, retries, and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the client library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// The client calls hooks to emit events:
//
//	observability.HTTP().OnRequest(ctx, requestID, "get_balance")
//	// ... do request ...
//	observability.HTTP().OnResponse(ctx, requestID, "get_balance", 200, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from API client operations.
// requestID is a correlation identifier unique to one attempt.
type HTTPHooks interface {
	// OnRequest records an outgoing API request.
	OnRequest(ctx context.Context, requestID, operation string)

	// OnResponse records an API response.
	OnResponse(ctx context.Context, requestID, operation string, statusCode int, duration time.Duration)

	// OnRetry records a retry of a transiently failed call.
	OnRetry(ctx context.Context, requestID, operation string, attempt int, err error)

	// OnError records a request failure (network failure, timeout, API error).
	OnError(ctx context.Context, requestID, operation string, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, operation string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, operation string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, operation string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                            {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration)       {}
func (NoopHTTPHooks) OnRetry(context.Context, string, string, int, error)                  {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                       {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any API calls.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	httpHooks = NoopHTTPHooks{}
	cacheHooks = NoopCacheHooks{}
}
