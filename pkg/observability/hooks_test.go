package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnIngestStart(ctx, "abc123")
	p.OnIngestComplete(ctx, "abc123", 100, time.Second, nil)
	p.OnLayoutStart(ctx, "tree", 100)
	p.OnLayoutComplete(ctx, "tree", time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "tree")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)

	f := NoopFetchHooks{}
	f.OnFetch(ctx, "https://example.com/coaching_tree.json")
	f.OnFetchComplete(ctx, "https://example.com/coaching_tree.json", 200, 4096, time.Second)
	f.OnFetchError(ctx, "https://example.com/coaching_tree.json", nil)
}

func TestRegistryDefaultsAndReset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should default to NoopPipelineHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}
	if _, ok := Fetch().(NoopFetchHooks); !ok {
		t.Error("Fetch() should default to NoopFetchHooks")
	}

	SetPipelineHooks(&countingHooks{})
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore the noop pipeline hooks")
	}
}

func TestRegistryDeliversToInstalledHooks(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &countingHooks{}
	SetPipelineHooks(rec)
	SetCacheHooks(rec)

	ctx := context.Background()
	Pipeline().OnIngestComplete(ctx, "hash", 3, time.Millisecond, nil)
	Pipeline().OnLayoutComplete(ctx, "tree", time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "tree")
	Cache().OnCacheHit(ctx, "layout")

	if rec.stages() != 2 {
		t.Errorf("stage completions = %d, want 2", rec.stages())
	}
	if rec.hits() != 2 {
		t.Errorf("cache hits = %d, want 2", rec.hits())
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	rec := &countingHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)

	if Pipeline() != rec {
		t.Error("SetPipelineHooks(nil) should keep the installed hooks")
	}
}

// countingHooks records invocation counts; the embedded noops cover the
// methods the tests don't exercise.
type countingHooks struct {
	NoopPipelineHooks
	NoopCacheHooks

	mu         sync.Mutex
	stageCount int
	hitCount   int
}

func (h *countingHooks) OnIngestComplete(context.Context, string, int, time.Duration, error) {
	h.mu.Lock()
	h.stageCount++
	h.mu.Unlock()
}

func (h *countingHooks) OnLayoutComplete(context.Context, string, time.Duration, error) {
	h.mu.Lock()
	h.stageCount++
	h.mu.Unlock()
}

func (h *countingHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	h.hitCount++
	h.mu.Unlock()
}

func (h *countingHooks) stages() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stageCount
}

func (h *countingHooks) hits() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hitCount
}
