package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/coachtree/coachtree/pkg/cache"
	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete ingest → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Ingest
	ingestStart := time.Now()
	tree, ingestHit, err := r.IngestWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	result.Tree = tree
	result.Stats.IngestTime = time.Since(ingestStart)
	result.Stats.CoachCount = len(tree.Dataset.Coaches)
	result.Stats.KeptCount = tree.KeptCount()
	result.CacheInfo.IngestHit = ingestHit

	// Compute tree hash for cache keys and API responses
	if treeData, err := MarshalTree(tree); err == nil {
		result.TreeHash = cache.Hash(treeData)
	}

	r.Logger.Info("ingested dataset",
		"coaches", result.Stats.CoachCount,
		"kept", result.Stats.KeptCount,
		"deepest", tree.Deepest,
		"duration", result.Stats.IngestTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, tree, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.EdgeCount = len(l.Edges)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"nodes", len(l.Nodes),
		"edges", len(l.Edges),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// IngestWithCacheInfo runs the ingest stage with caching and returns cache hit info.
func (r *Runner) IngestWithCacheInfo(ctx context.Context, opts Options) (*Tree, bool, error) {
	if err := opts.ValidateForIngest(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// The cache key is derived from the serialized dataset, so the
	// dataset is loaded even on the cache-hit path.
	d, err := LoadDataset(opts)
	if err != nil {
		return nil, false, err
	}
	opts.Dataset = &d

	datasetData, err := graph.MarshalDataset(d)
	if err != nil {
		return nil, false, fmt.Errorf("serialize dataset for cache key: %w", err)
	}
	datasetHash := cache.Hash(datasetData)
	cacheKey := r.Keyer.TreeKey(datasetHash, opts.TreeKeyOpts())

	hooks := observability.Pipeline()
	hooks.OnIngestStart(ctx, datasetHash)
	start := time.Now()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if tree, err := UnmarshalTree(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "tree")
				hooks.OnIngestComplete(ctx, datasetHash, tree.KeptCount(), time.Since(start), nil)
				return tree, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "tree")
	}

	tree, err := Ingest(ctx, opts)
	hooks.OnIngestComplete(ctx, datasetHash, treeKept(tree), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := MarshalTree(tree); err == nil {
			if r.Cache.Set(ctx, cacheKey, data, cache.TTLTree) == nil {
				observability.Cache().OnCacheSet(ctx, "tree", len(data))
			}
		}
	}

	return tree, false, nil
}

// Ingest is a convenience wrapper that calls IngestWithCacheInfo and discards the cache hit info.
func (r *Runner) Ingest(ctx context.Context, opts Options) (*Tree, error) {
	tree, _, err := r.IngestWithCacheInfo(ctx, opts)
	return tree, err
}

// GenerateLayoutWithCacheInfo generates a layout with caching and returns cache hit info.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, tree *Tree, opts Options) (graph.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key
	treeData, err := MarshalTree(tree)
	if err != nil {
		return graph.Layout{}, false, fmt.Errorf("serialize tree for cache key: %w", err)
	}
	treeHash := cache.Hash(treeData)
	cacheKey := r.Keyer.LayoutKey(treeHash, opts.LayoutKeyOpts())

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.VizType, tree.KeptCount())
	start := time.Now()

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), nil)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	p, err := tree.Pruned()
	if err != nil {
		hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), err)
		return graph.Layout{}, false, err
	}

	l, err := GenerateLayout(p, opts)
	hooks.OnLayoutComplete(ctx, opts.VizType, time.Since(start), err)
	if err != nil {
		return graph.Layout{}, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := graph.MarshalLayout(l); err == nil {
			if r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout) == nil {
				observability.Cache().OnCacheSet(ctx, "layout", len(data))
			}
		}
	}

	return l, false, nil
}

// GenerateLayout is a convenience wrapper that calls GenerateLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateLayout(ctx context.Context, tree *Tree, opts Options) (graph.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, tree, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Try to get all formats from cache
	if !opts.Refresh {
		allCached := true
		artifacts := make(map[string][]byte)

		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}

		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Render all formats
	rendered, err := RenderFromLayout(l, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	if !opts.Refresh {
		for format, data := range rendered {
			cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// treeKept tolerates a nil tree when reporting kept counts to hooks.
func treeKept(t *Tree) int {
	if t == nil {
		return 0
	}
	return t.KeptCount()
}
