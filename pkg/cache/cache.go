// Package cache provides caching for pipeline stages and HTTP fetches.
//
// The Cache interface abstracts over storage backends:
//   - FileCache: file-based cache for CLI usage (XDG cache dir)
//   - RedisCache: Redis-backed cache for server deployments
//   - NullCache: no-op cache for tests or --no-cache runs
//
// Cache keys are produced by a Keyer so that every pipeline stage derives
// its key from a content hash of its input plus an options fingerprint.
// Identical input and options always hit the same entry; any change to
// either produces a new key.
package cache

import (
	"context"
	"time"
)

// TTLs per cached artifact class. Trees are cheap to recompute but fetched
// datasets change rarely; rendered artifacts are the most expensive.
const (
	// TTLHTTP is the lifetime of cached HTTP fetch responses.
	TTLHTTP = 24 * time.Hour

	// TTLTree is the lifetime of cached lineage trees (ingest stage).
	TTLTree = 7 * 24 * time.Hour

	// TTLLayout is the lifetime of cached layouts.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 30 * 24 * time.Hour
)

// Cache is the interface for cache backends.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The boolean reports whether the key was found
	// and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TreeKeyOpts are the options that affect the ingest stage output.
type TreeKeyOpts struct {
	MaxDepth int
}

// LayoutKeyOpts are the options that affect layout computation.
type LayoutKeyOpts struct {
	VizType      string
	Passes       int
	Converge     bool
	CardWidth    float64
	CardHeight   float64
	CardGap      float64
	LayerSpacing float64
	PadTop       float64
	PadBottom    float64
	PadSide      float64
}

// ArtifactKeyOpts are the options that affect rendered output.
type ArtifactKeyOpts struct {
	Format      string
	ShowOverlap bool
	Highlight   string
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// TreeKey generates a key for lineage tree caching (ingest stage).
	TreeKey(datasetHash string, opts TreeKeyOpts) string

	// LayoutKey generates a key for layout caching.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for rendered artifact caching.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces content-addressed keys with stage prefixes.
// Keys look like "tree:<sha256>", "layout:<sha256>", "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return hashKey("http", namespace, key)
}

// TreeKey generates a key for lineage tree caching.
func (k *DefaultKeyer) TreeKey(datasetHash string, opts TreeKeyOpts) string {
	return hashKey("tree", datasetHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
