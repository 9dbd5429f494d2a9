package lineage

import (
	"maps"
	"slices"
)

// PosMap creates a position lookup map from a slice of coach ids.
// The returned map maps each id to its index in the slice. This is
// commonly used to convert layer orderings into fast position lookups
// for crossing calculations. Returns an empty map for a nil or empty
// slice.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// CountCrossings returns the total number of render-edge crossings for
// the given per-generation orderings, summed over each pair of adjacent
// generations. The orders map should contain coach ids in left-to-right
// order per depth. Edges spanning more than one generation contribute
// nothing here: they are counted only between the generations of their
// actual endpoints.
//
// The fixed-pass barycenter sweep does not use this - it is the metric
// behind the optional convergence stopping rule and the layout
// self-checks.
func (p *Pruned) CountCrossings(orders map[int][]string) int {
	depths := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for i := 0; i+1 < len(depths); i++ {
		shallow, deep := depths[i], depths[i+1]
		if deep != shallow+1 {
			continue
		}
		crossings += p.CountLayerCrossings(orders[deep], orders[shallow])
	}
	return crossings
}

// CountLayerCrossings counts crossings between two adjacent generations
// using a Fenwick tree (binary indexed tree) for O(E log V) performance,
// where E is the number of edges between the generations and V is the
// size of the protégé generation.
//
// The mentors slice is the deeper generation (drawn higher), proteges
// the shallower one. Two edges (m1,p1) and (m2,p2) cross if and only if
//
//	pos(m1) < pos(m2) AND pos(p1) > pos(p2)
//
// which is an inversion in the sequence of protégé positions once edges
// are sorted by mentor position. Returns 0 if either generation is
// empty, as no crossings can exist without edges.
func (p *Pruned) CountLayerCrossings(mentors, proteges []string) int {
	if len(mentors) == 0 || len(proteges) == 0 {
		return 0
	}

	protegePos := PosMap(proteges)

	type edge struct{ mentor, protege int }
	edges := make([]edge, 0, len(mentors)*2)
	for i, id := range mentors {
		for _, protege := range p.ProtegesOf(id) {
			if pos, ok := protegePos[protege]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.mentor != b.mentor {
			return a.mentor - b.mentor
		}
		return a.protege - b.protege
	})

	// Count inversions with a Fenwick tree
	fenwick := make([]int, len(proteges)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		// Query: edges seen so far with protégé position <= e.protege
		lessOrEqual := 0
		for q := e.protege + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.protege + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
