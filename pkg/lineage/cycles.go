package lineage

import "slices"

// findCycle searches the kept mentorship subgraph for a directed cycle
// and returns its member ids in traversal order, or nil if acyclic.
//
// Edges sourced at roots are skipped: depth relaxation never follows
// them (roots are pinned at 0), so a back-mentorship loop through a
// root is harmless and must not reject the dataset.
//
// Uses depth-first search with white/gray/black coloring. A gray child
// means the current path loops back; the cycle is the gray stack suffix
// starting at that child.
func findCycle(f *Forest, kept []bool) []string {
	const (
		white = iota
		gray
		black
	)

	color := make([]int8, f.Len())
	var stack []int32
	var cycle []string

	var dfs func(i int32) bool
	dfs = func(i int32) bool {
		color[i] = gray
		stack = append(stack, i)
		if !f.IsRoot(i) {
			for _, p := range f.Proteges(i) {
				if !kept[p] {
					continue
				}
				switch color[p] {
				case white:
					if dfs(p) {
						return true
					}
				case gray:
					start := slices.Index(stack, p)
					for _, member := range stack[start:] {
						cycle = append(cycle, f.ID(member))
					}
					return true
				}
			}
		}
		color[i] = black
		stack = stack[:len(stack)-1]
		return false
	}

	for i := int32(0); int(i) < f.Len(); i++ {
		if kept[i] && color[i] == white {
			if dfs(i) {
				return cycle
			}
		}
	}
	return nil
}
