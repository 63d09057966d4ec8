// Package observability provides hooks for metrics and logging.
//
// Libraries report what they do through small hook interfaces; main decides
// what listens. The defaults are no-ops, so nothing in pkg/ depends on a
// metrics backend.
//
// # Usage
//
// Register hooks at startup:
//
//	observability.SetRunHooks(metrics.New(registry))
//	observability.SetCacheHooks(metrics.New(registry))
//
// Libraries call the registered hooks:
//
//	observability.Run().OnRunStart(ctx, desc.ID)
//	// ... collect events ...
//	observability.Run().OnRunComplete(ctx, desc.ID, len(events), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// RunHooks receives events from trace recording.
type RunHooks interface {
	OnRunStart(ctx context.Context, algorithm string)
	OnRunComplete(ctx context.Context, algorithm string, events int, duration time.Duration, err error)
}

// CacheHooks receives events from trace and artifact caching. kind is
// "trace" or "render".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// HTTPHooks receives events from the API server. route is the matched
// pattern, not the raw path, to keep label cardinality bounded.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopRunHooks ignores every event.
type NoopRunHooks struct{}

func (NoopRunHooks) OnRunStart(context.Context, string)                                 {}
func (NoopRunHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

var (
	runHooks   RunHooks   = NoopRunHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetRunHooks registers run hooks. Nil is ignored.
func SetRunHooks(h RunHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		runHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Run returns the registered run hooks.
func Run() RunHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return runHooks
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

// Reset restores the no-op defaults. Used by tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	runHooks = NoopRunHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
