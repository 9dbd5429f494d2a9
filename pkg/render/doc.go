// Package render provides visualization rendering for lineage graphs.
//
// # Overview
//
// This package contains the rendering surface that transforms computed
// layouts into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - The layered tree diagram (in [tree] subpackage)
//   - Node-link diagrams (in [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats
// using the external rsvg-convert tool (from librsvg). Both the tree
// and node-link renderers use them.
//
//	svg := sink.RenderSVG(layout, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Tree Diagram
//
// The [tree] subpackage renders mentorship data as the layered card
// diagram: active head coaches anchor the bottom row and each mentor
// generation stacks above its protégés.
//
// Key tree subpackages:
//   - [tree/ordering]: barycenter crossing minimization
//   - [tree/layout]: coordinate assignment and edge curves
//   - [tree/sink]: output formats (SVG, JSON)
//   - [tree/styles]: card color resolution
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders traditional directed graph
// diagrams using Graphviz, useful for sanity-checking the layered
// view.
//
//	dot := nodelink.ToDOT(l, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//
// [tree]: github.com/coachtree/coachtree/pkg/render/tree
// [tree/ordering]: github.com/coachtree/coachtree/pkg/render/tree/ordering
// [tree/layout]: github.com/coachtree/coachtree/pkg/render/tree/layout
// [tree/sink]: github.com/coachtree/coachtree/pkg/render/tree/sink
// [tree/styles]: github.com/coachtree/coachtree/pkg/render/tree/styles
// [nodelink]: github.com/coachtree/coachtree/pkg/render/nodelink
package render
