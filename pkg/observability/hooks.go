// Package observability provides hooks for metrics and tracing.
//
// Libraries in this module emit events through small hook interfaces; the
// binary decides what receives them. Defaults are no-ops, so packages can be
// used without any observability backend.
//
// Register hooks at application startup:
//
//	hooks, err := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	if err != nil { ... }
//	observability.SetEnumerationHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//
// Libraries call hooks to emit events:
//
//	observability.Enumeration().OnEnumerateStart(ctx, "trees", n, 0)
//	// ... walk the successor ...
//	observability.Enumeration().OnEnumerateComplete(ctx, "trees", items, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Enumeration Hooks
// =============================================================================

// EnumerationHooks receives events from enumeration runs.
type EnumerationHooks interface {
	// OnEnumerateStart records the start of a walk over kind with parameters
	// n and l (l is 0 for trees).
	OnEnumerateStart(ctx context.Context, kind string, n, l int)

	// OnEnumerateComplete records how many items a walk produced.
	OnEnumerateComplete(ctx context.Context, kind string, items int, duration time.Duration, err error)

	// OnCensusComplete records a finished count table.
	OnCensusComplete(ctx context.Context, kind string, max int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming request for a route pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records the response status and latency.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEnumerationHooks is a no-op implementation of EnumerationHooks.
type NoopEnumerationHooks struct{}

func (NoopEnumerationHooks) OnEnumerateStart(context.Context, string, int, int) {}
func (NoopEnumerationHooks) OnEnumerateComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopEnumerationHooks) OnCensusComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	enumerationHooks EnumerationHooks = NoopEnumerationHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	httpHooks        HTTPHooks        = NoopHTTPHooks{}
	hooksMu          sync.RWMutex
)

// SetEnumerationHooks registers custom enumeration hooks.
// This should be called once at application startup.
func SetEnumerationHooks(h EnumerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		enumerationHooks = h
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

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before serving.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Enumeration returns the registered enumeration hooks.
func Enumeration() EnumerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return enumerationHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	enumerationHooks = NoopEnumerationHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
