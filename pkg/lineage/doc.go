// Package lineage computes generation structure and traversal queries
// over coaching mentorship graphs.
//
// # Overview
//
// Coachtree draws mentorship data as a layered diagram: currently
// active head coaches anchor the bottom row, their mentors sit one
// generation up, and so on. This package owns everything between the
// raw snapshot and the visual ordering: adjacency construction, depth
// assignment, root-reachability pruning, and the lineage queries that
// drive interactive highlighting.
//
// # Pipeline
//
// Processing is a strict batch sequence, recomputed from scratch per
// snapshot:
//
//	f := lineage.Build(&dataset)            // index-based adjacency
//	a, err := lineage.Assign(f, 0)          // kept set + generation depths
//	p := lineage.Prune(f, a)                // root-reachable view
//
// [Build] produces a Forest: dense coach indices with mentor and
// protégé lists stored as flat arrays (counted allocation, two passes).
// [Assign] discovers the kept set by walking upward from the roots,
// then relaxes depths as a capped longest-path computation with roots
// pinned at generation 0. [Prune] restricts coaches and connections to
// the kept set and rebuilds the adjacency index over render edges only.
//
// # Queries
//
// [Pruned.DeepestAncestorChain] finds the longest simple mentor chain
// from a coach, [Pruned.FullReachableSet] collects all ancestors and
// descendants, and [Pruned.PathEdges] extracts the render edges linking
// a highlighted set. All three are read-only over the pruned index and
// safe to call concurrently and repeatedly between re-renders.
//
// # Determinism
//
// Identical snapshots must produce identical output, run over run:
// discovery is FIFO, relaxation scans edges in input order, layer
// grouping starts from a lexical sort, and every tie-break is fixed.
// Nothing in this package consults randomness, wall clocks, or map
// iteration order where it could leak into results.
//
// # Tolerated anomalies
//
// Connections naming unknown coach ids are dropped wherever membership
// is checked, never reported. Coaches with no path to a root are
// excluded from all output. The one rejected input is a directed cycle
// among kept mentorship edges, which would make longest-path depths
// meaningless - [Assign] returns [ErrCycle] naming the chain.
package lineage
