// Package pkg provides the core libraries for Coachtree lineage visualization.
//
// # Overview
//
// Coachtree transforms coaching mentorship data into layered tree diagrams
// where active head coaches anchor the bottom row and each mentor generation
// stacks above its protégés. The pkg directory is organized into four main
// areas:
//
//  1. [graph] - Dataset and layout serialization types
//  2. [lineage] - Domain logic (adjacency, layering, pruning, traversal)
//  3. [render] - Visualization rendering (tree diagram, node-link, conversion)
//  4. [pipeline] - Orchestration (ingest → layout → render) with caching
//
// # Architecture
//
// The typical data flow through Coachtree:
//
//	Dataset JSON (coaches + connections)
//	         ↓
//	    [lineage] package (adjacency, layer assignment, pruning)
//	         ↓
//	    [render/tree] package (ordering + coordinates + edge curves)
//	         ↓
//	    SVG/PDF/PNG/JSON/DOT output
//
// # Quick Start
//
// Load a dataset and render the mentorship tree:
//
//	import (
//	    "context"
//	    "github.com/coachtree/coachtree/pkg/graph"
//	    "github.com/coachtree/coachtree/pkg/pipeline"
//	)
//
//	// 1. Ingest and prune the dataset
//	runner := pipeline.NewRunner(nil, nil, logger)
//	tree, _ := runner.Ingest(context.Background(), pipeline.Options{
//	    DatasetPath: "coaching_tree.json",
//	    MaxDepth:    pipeline.DefaultMaxDepth,
//	})
//
//	// 2. Compute the layout
//	layout, _ := runner.GenerateLayout(context.Background(), tree, pipeline.Options{})
//
//	// 3. Render to SVG
//	artifacts, _ := runner.Render(context.Background(), layout, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//
// # Main Packages
//
// ## Domain Logic
//
// [lineage] - Mentorship graph algorithms: adjacency construction, root
// detection, breadth-first layer assignment with a depth cap, lineage
// pruning, cycle detection, and traversal queries (deepest ancestor chain,
// reachable set, per-coach connections).
//
// ## Visualization
//
// [render/tree] - The layered card diagram. The rendering pipeline:
// ordering → layout → sink.
//
//   - [render/tree/ordering]: barycenter crossing minimization
//   - [render/tree/layout]: coordinate assignment and edge curves
//   - [render/tree/sink]: output formats (SVG, JSON)
//   - [render/tree/styles]: team color palettes and card styling
//
// [render/nodelink] - Directed graph diagrams using Graphviz.
//
// [render] - Top-level utilities for format conversion (SVG to PDF/PNG).
//
// ## Serialization
//
// [graph] - Dataset and layout types with JSON encoding, validation, and
// file I/O.
//
// ## Infrastructure
//
// [pipeline] - Complete visualization pipeline (ingest → layout → render)
// used by CLI and server. Each stage is cached under a content hash so
// repeated runs over unchanged inputs are free.
//
// [cache] - Pipeline result cache with file, Redis, and null backends.
//
// [store] - Named snapshot store for datasets and layouts with file and
// MongoDB backends.
//
// [observability] - Process-wide hooks for pipeline and cache events,
// consumed by the server's Prometheus metrics.
//
// [errors] - Coded errors shared across packages, used to map failures to
// exit codes and HTTP statuses.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/lineage/...     # Specific package
//	go test -run Example          # Examples only
//
// [graph]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/graph
// [lineage]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/lineage
// [render]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/render
// [render/tree]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/render/tree
// [render/tree/ordering]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/render/tree/ordering
// [render/tree/layout]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/render/tree/layout
// [render/tree/sink]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/render/tree/sink
// [render/tree/styles]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/render/tree/styles
// [render/nodelink]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/cache
// [store]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/store
// [observability]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/observability
// [errors]: https://pkg.go.dev/github.com/coachtree/coachtree/pkg/errors
package pkg
