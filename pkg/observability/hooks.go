// Package observability decouples the pipeline, cache, and fetch layers
// from any particular metrics backend.
//
// The library packages emit events through a process-wide registry of
// hook interfaces whose defaults do nothing. A binary that wants metrics
// installs real implementations at startup — the HTTP server wires these
// hooks into its Prometheus collectors — while the CLI leaves the no-ops
// in place and pays nothing. Library code never imports a metrics
// framework.
//
// Install at startup:
//
//	observability.SetPipelineHooks(&myPipelineHooks{})
//	observability.SetCacheHooks(&myCacheHooks{})
//
// Emit from libraries:
//
//	observability.Pipeline().OnIngestStart(ctx, datasetHash)
//	// ... build the lineage tree ...
//	observability.Pipeline().OnIngestComplete(ctx, datasetHash, keptCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the layout pipeline.
type PipelineHooks interface {
	// Ingest events: dataset validation, adjacency build, layer assignment.
	OnIngestStart(ctx context.Context, datasetHash string)
	OnIngestComplete(ctx context.Context, datasetHash string, keptCount int, duration time.Duration, err error)

	// Layout events: ordering and coordinate assignment.
	OnLayoutStart(ctx context.Context, vizType string, nodeCount int)
	OnLayoutComplete(ctx context.Context, vizType string, duration time.Duration, err error)

	// Render events: artifact generation.
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
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
// Fetch Hooks
// =============================================================================

// FetchHooks receives events from dataset fetch operations.
type FetchHooks interface {
	// OnFetch records an outgoing dataset request.
	OnFetch(ctx context.Context, url string)

	// OnFetchComplete records a completed fetch.
	OnFetchComplete(ctx context.Context, url string, statusCode int, size int, duration time.Duration)

	// OnFetchError records a failed fetch (network failure, timeout).
	OnFetchError(ctx context.Context, url string, err error)
}

// =============================================================================
// No-op Defaults
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnIngestStart(context.Context, string) {}
func (NoopPipelineHooks) OnIngestComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, int)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, time.Duration, error)   {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopFetchHooks is a no-op implementation of FetchHooks.
type NoopFetchHooks struct{}

func (NoopFetchHooks) OnFetch(context.Context, string)                                  {}
func (NoopFetchHooks) OnFetchComplete(context.Context, string, int, int, time.Duration) {}
func (NoopFetchHooks) OnFetchError(context.Context, string, error)                      {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	fetchHooks    FetchHooks    = NoopFetchHooks{}
	hooksMu       sync.RWMutex
)

// The Set* functions install hooks for the rest of the process; call
// them once at startup, before pipeline or cache traffic begins. A nil
// argument is ignored so callers can pass an optional hook straight
// through.

func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	pipelineHooks = h
	hooksMu.Unlock()
}

func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	cacheHooks = h
	hooksMu.Unlock()
}

func SetFetchHooks(h FetchHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	fetchHooks = h
	hooksMu.Unlock()
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Fetch returns the installed fetch hooks.
func Fetch() FetchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fetchHooks
}

// Reset restores the no-op defaults; tests use it to isolate themselves.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	fetchHooks = NoopFetchHooks{}
}
