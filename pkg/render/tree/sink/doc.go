// Package sink exports tree layouts to output formats.
//
// [RenderSVG] produces the standalone diagram document with hover
// interaction, optional lineage highlighting, and an optional overlay
// of career-overlap connections. [RenderJSON] produces the canonical
// layout artifact for caching and external renderers. PNG and PDF
// conversion live in the parent render package since they shell out to
// librsvg rather than generating geometry.
package sink
