package server

import (
	"context"
	"time"

	"github.com/coachtree/coachtree/pkg/observability"
)

// =============================================================================
// Observability Hook Wiring
// =============================================================================

// InstallHooks registers hook implementations that feed pipeline and
// cache events into the prometheus collectors. Call once at startup;
// the global hook registry keeps the last registration.
func (m *Metrics) InstallHooks() {
	observability.SetPipelineHooks(&pipelineMetricsHooks{m: m})
	observability.SetCacheHooks(&cacheMetricsHooks{m: m})
}

// pipelineMetricsHooks forwards pipeline stage completions to prometheus.
// Start events carry no timing information, so only completions count.
type pipelineMetricsHooks struct {
	observability.NoopPipelineHooks
	m *Metrics
}

func (h *pipelineMetricsHooks) OnIngestComplete(_ context.Context, _ string, _ int, duration time.Duration, err error) {
	h.m.RecordStage("ingest", duration, err)
}

func (h *pipelineMetricsHooks) OnLayoutComplete(_ context.Context, _ string, duration time.Duration, err error) {
	h.m.RecordStage("layout", duration, err)
}

func (h *pipelineMetricsHooks) OnRenderComplete(_ context.Context, _ []string, duration time.Duration, err error) {
	h.m.RecordStage("render", duration, err)
}

// cacheMetricsHooks counts cache hits, misses, and writes per key type.
type cacheMetricsHooks struct {
	m *Metrics
}

func (h *cacheMetricsHooks) OnCacheHit(_ context.Context, keyType string) {
	h.m.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (h *cacheMetricsHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.m.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (h *cacheMetricsHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.m.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
}
