// Package layout turns ordered generations into pixel geometry.
//
// [Build] is the coordinate assigner of the tree pipeline: given a
// pruned snapshot and the per-generation orderings produced by the
// ordering package, it computes card center positions, canvas extent,
// and the cubic curve geometry for every render edge. The pass is a
// single deterministic O(V+E) sweep over fixed [Params]; identical
// orderings always yield identical coordinates.
//
// Generations stack bottom-up: roots occupy the lowest row and each
// mentor generation renders one LayerSpacing above its protégés.
package layout
