// Package graph provides serialization types for coaching datasets and layouts.
//
// This package defines the canonical wire format for Coachtree's data, used
// for JSON files, API responses, caching, and the snapshot store.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Dataset], [Layout]: Serialization types (this package)
//   - pkg/lineage.Tree: Internal lineage representation (kept set, depths, adjacency)
//   - pkg/render/tree/layout.Layout: Internal layout (positions, canvas)
//
// # Core Types
//
//   - [Dataset]: Raw snapshot of coaches, connections, and team colors
//   - [Coach], [Connection]: Structural types
//   - [Layout]: Unified format for visualization layouts (tree or nodelink)
//   - [PositionedNode], [RenderEdge], [Curve]: Positioned elements
//
// # Dataset Serialization
//
// Datasets use the scraper's JSON format:
//
//	{
//	  "coaches": [{"id": "bill_walsh", "name": "Bill Walsh", "is_current_hc": false}],
//	  "connections": [{"source": "bill_walsh", "target": "mike_holmgren", "type": "coaching_tree"}],
//	  "team_colors": {"San Francisco 49ers": "#AA0000"}
//	}
//
// Connection direction is always mentor → protégé: the source coached the
// target. Two connection types exist: "coaching_tree" edges drive layering
// and rendering, "career_overlap" edges are carried for display only.
//
// Common operations:
//
//	d, _ := graph.ReadDatasetFile("coaches.json")  // File → Dataset
//	data, _ := graph.MarshalDataset(d)             // Dataset → []byte
//	err := d.Validate()                            // Structural + semantic checks
//
// # Layout Serialization
//
// Layouts are discriminated by VizType:
//
//	layout, _ := graph.UnmarshalLayout(data)
//	if layout.IsTree() {
//	    // Use layout.Nodes and layout.Edges for the positioned diagram
//	} else {
//	    // Use layout.DOT for Graphviz rendering
//	}
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
