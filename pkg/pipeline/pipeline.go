// Package pipeline provides the core visualization pipeline for Coachtree.
//
// This package implements the complete ingest → layout → render pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Ingest: Read and validate a dataset, build the mentorship forest,
//     assign generation depths, and prune to the root-reachable kept set
//  2. Layout: Order each generation (barycenter heuristic) and compute
//     pixel positions and edge curves
//  3. Render: Generate output in various formats (SVG, PNG, PDF, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DatasetPath: "coaching_tree.json",
//	    Formats:     []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Ingest only
//	tree, err := runner.Ingest(ctx, opts)
//
//	// Layout with existing tree
//	layout, err := runner.GenerateLayout(ctx, tree, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/coachtree/coachtree/pkg/cache"
	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/lineage"
	"github.com/coachtree/coachtree/pkg/render/tree/layout"
	"github.com/coachtree/coachtree/pkg/render/tree/ordering"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxDepth caps lineage depth; generations past it compress
	// into the deepest band. Matches lineage.DefaultMaxDepth.
	DefaultMaxDepth = lineage.DefaultMaxDepth

	// DefaultPasses is the barycenter sweep count for crossing
	// minimization. Matches ordering.DefaultPasses.
	DefaultPasses = ordering.DefaultPasses

	// DefaultScale is the default raster scale factor for PNG output.
	DefaultScale = 2.0
)

// DefaultVizType is the default visualization type.
const DefaultVizType = graph.VizTypeTree

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	graph.VizTypeTree:     true,
	graph.VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Ingest options
	DatasetPath string         `json:"dataset_path,omitempty"` // Path to a dataset JSON file
	Dataset     *graph.Dataset `json:"dataset,omitempty"`      // Inline dataset (API requests)
	MaxDepth    int            `json:"max_depth,omitempty"`
	Refresh     bool           `json:"refresh,omitempty"` // Bypass caches and recompute

	// Layout options
	VizType  string        `json:"viz_type,omitempty"`
	Passes   int           `json:"passes,omitempty"`
	Converge bool          `json:"converge,omitempty"` // Measure crossings, keep best pass
	Layout   layout.Params `json:"layout,omitempty"`   // Geometry constants; zero fields use defaults

	// Render options
	Formats     []string `json:"formats,omitempty"`
	ShowOverlap bool     `json:"show_overlap,omitempty"` // Draw career-overlap connections
	Highlight   []string `json:"highlight,omitempty"`    // Coach ids to emphasize
	Static      bool     `json:"static,omitempty"`       // Omit hover CSS/JS from SVG
	Scale       float64  `json:"scale,omitempty"`        // PNG raster scale

	// Runtime options (not serialized)
	Logger  *log.Logger      `json:"-"`
	Orderer ordering.Orderer `json:"-"` // Custom orderer; nil uses Barycentric

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Tree is the ingested lineage snapshot.
	Tree *Tree

	// TreeHash is the content hash of the serialized tree.
	TreeHash string

	// Layout contains the positioned layout data.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CoachCount int // Coaches in the input dataset
	KeptCount  int // Coaches kept after pruning
	EdgeCount  int // Render edges between kept coaches
	IngestTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	IngestHit bool // Whether the tree came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return fmt.Errorf("invalid viz_type: %q (must be one of: tree, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForIngest(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForIngest checks required fields for the ingest stage.
func (o *Options) ValidateForIngest() error {
	if o.DatasetPath == "" && o.Dataset == nil {
		return fmt.Errorf("dataset_path or dataset is required")
	}

	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Passes == 0 {
		o.Passes = DefaultPasses
	}
	o.Layout = o.Layout.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateVizType(o.VizType)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsTree returns true if this is a layered tree visualization.
func (o *Options) IsTree() bool {
	return o.VizType == "" || o.VizType == graph.VizTypeTree
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == graph.VizTypeNodelink
}

// orderer returns the configured orderer or the default barycentric one.
func (o *Options) orderer() ordering.Orderer {
	if o.Orderer != nil {
		return o.Orderer
	}
	return ordering.Barycentric{Passes: o.Passes, Converge: o.Converge}
}

// TreeKeyOpts returns cache key options for the ingest stage.
func (o *Options) TreeKeyOpts() cache.TreeKeyOpts {
	return cache.TreeKeyOpts{
		MaxDepth: o.MaxDepth,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	p := o.Layout.WithDefaults()
	return cache.LayoutKeyOpts{
		VizType:      o.VizType,
		Passes:       o.Passes,
		Converge:     o.Converge,
		CardWidth:    p.CardWidth,
		CardHeight:   p.CardHeight,
		CardGap:      p.CardGap,
		LayerSpacing: p.LayerSpacing,
		PadTop:       p.PadTop,
		PadBottom:    p.PadBottom,
		PadSide:      p.PadSide,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		ShowOverlap: o.ShowOverlap,
		Highlight:   strings.Join(o.Highlight, ","),
	}
}
