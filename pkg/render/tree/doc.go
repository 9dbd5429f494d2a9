// Package tree renders coaching lineages as layered card diagrams.
//
// The subpackages form the back half of the layout pipeline:
//
//   - ordering: barycenter crossing minimization per generation
//   - layout: coordinate assignment and edge curve geometry
//   - styles: card color resolution (team colors, root accent)
//   - sink: SVG and JSON export
//
// Everything downstream of the lineage engine is deterministic and
// side-effect free; the same pruned snapshot always renders to the
// same bytes.
package tree
