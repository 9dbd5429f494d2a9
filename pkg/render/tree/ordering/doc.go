// Package ordering arranges coaches left-to-right within each
// generation of the lineage diagram.
//
// # The Ordering Problem
//
// A layered mentorship diagram is readable only when the edges between
// adjacent generations rarely cross. Finding a crossing-minimal
// ordering is NP-hard, so this package uses the classic barycenter
// heuristic: repeatedly move each coach toward the average position of
// its neighbors in the adjacent generation, sweeping up and down the
// layers for a fixed number of passes.
//
// # Determinism
//
// The heuristic is deliberately fixed rather than adaptive. Every
// sweep starts from the same lexical initial order, every sort is
// stable, and the pass count is a constant, so the same snapshot
// always produces the same picture. The optional Converge mode trades
// that exact reproduction for measured crossing counts with early
// exit; the default keeps the fixed-pass behavior.
//
// # Usage
//
//	orderer := ordering.Barycentric{}
//	orders := orderer.OrderLayers(pruned) // map[generation][]coachID
package ordering
