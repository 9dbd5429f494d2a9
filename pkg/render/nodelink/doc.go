// Package nodelink renders lineage graphs as classic node-link
// diagrams via Graphviz.
//
// # Overview
//
// This is the debugging companion to the tree diagram: same coaches,
// same mentor → protégé edges, but laid out by Graphviz dot instead of
// the deterministic layered pipeline. Generations are pinned to equal
// ranks so the two views stay comparable.
//
// # Usage
//
// Convert a layout to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include generation depth and team
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
