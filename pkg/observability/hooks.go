// Package observability provides hooks for metrics, tracing and logging.
//
// Libraries emit events through the registered hooks; binaries decide what
// to do with them at startup. The defaults are no-ops, so the engine never
// depends on a particular backend.
//
//	func main() {
//	    observability.SetSynthesisHooks(myMetrics)
//	    observability.SetCacheHooks(myMetrics)
//	    // ...
//	}
//
// Emitting an event:
//
//	observability.Synthesis().OnSynthesisStart(ctx, mode, w, h)
//	// ... render ...
//	observability.Synthesis().OnSynthesisComplete(ctx, mode, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Synthesis Hooks
// =============================================================================

// SynthesisHooks receives events from the background pipeline.
type SynthesisHooks interface {
	OnSynthesisStart(ctx context.Context, mode string, width, height int)
	OnSynthesisComplete(ctx context.Context, mode string, duration time.Duration, err error)

	// OnBatchComplete fires once per directory run.
	OnBatchComplete(ctx context.Context, processed, failed int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSynthesisHooks ignores every event.
type NoopSynthesisHooks struct{}

func (NoopSynthesisHooks) OnSynthesisStart(context.Context, string, int, int)                {}
func (NoopSynthesisHooks) OnSynthesisComplete(context.Context, string, time.Duration, error) {}
func (NoopSynthesisHooks) OnBatchComplete(context.Context, int, int, time.Duration)          {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	synthesisHooks SynthesisHooks = NoopSynthesisHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetSynthesisHooks registers synthesis hooks. Nil is ignored.
func SetSynthesisHooks(h SynthesisHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		synthesisHooks = h
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

// Synthesis returns the registered synthesis hooks.
func Synthesis() SynthesisHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return synthesisHooks
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

// Reset restores the no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	synthesisHooks = NoopSynthesisHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
