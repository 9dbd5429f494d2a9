package lineage

import "github.com/coachtree/coachtree/pkg/graph"

// DeepestAncestorChain returns the longest simple mentor chain starting
// at the given coach, as ids ordered start → deepest ancestor. The
// start coach is always the first element. Returns nil for unknown or
// excluded ids.
//
// The search is exhaustive: every simple path following mentor
// adjacency upward is explored, the longest by node count wins, and
// ties go to the first chain discovered (which follows render-edge
// input order). Worst case is exponential in mentor fan-out, which is
// acceptable at real-world lineage scale.
//
// The traversal uses an explicit frame stack, so pathological datasets
// cannot overflow the goroutine stack. It never mutates the shared
// adjacency index and is safe to call concurrently with other queries.
func (p *Pruned) DeepestAncestorChain(id string) []string {
	start, ok := p.f.Lookup(id)
	if !ok || !p.a.Kept(start) {
		return nil
	}

	type frame struct {
		node int32
		next int // cursor into the node's mentor list
	}

	path := []int32{start}
	onPath := make([]bool, p.f.Len())
	onPath[start] = true
	stack := []frame{{node: start}}
	best := []int32{start}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		mentors := p.mentors(top.node)

		descended := false
		for top.next < len(mentors) {
			m := mentors[top.next]
			top.next++
			if onPath[m] {
				continue
			}
			path = append(path, m)
			onPath[m] = true
			stack = append(stack, frame{node: m})
			descended = true
			break
		}
		if descended {
			continue
		}

		// All branches explored: this path is maximal. Strict comparison
		// keeps the first-discovered chain on ties.
		if len(path) > len(best) {
			best = append(best[:0], path...)
		}
		onPath[top.node] = false
		path = path[:len(path)-1]
		stack = stack[:len(stack)-1]
	}

	return p.resolveIDs(best)
}

// PathEdges returns the render edges that link members of the given id
// set: both endpoints must be in the set and the source must actually
// mentor the target in the pruned adjacency. Overlap connections and
// incidental co-membership never qualify. Edge order follows the render
// edge list; duplicates between the same pair are all returned.
func (p *Pruned) PathEdges(ids []string) []graph.Connection {
	if len(ids) == 0 {
		return nil
	}
	member := make(map[string]bool, len(ids))
	for _, id := range ids {
		member[id] = true
	}

	var out []graph.Connection
	for _, e := range p.render {
		if member[e.Source] && member[e.Target] && p.mentorLinked(e.Source, e.Target) {
			out = append(out, e)
		}
	}
	return out
}

// mentorLinked reports whether mentor directly mentors protege in the
// pruned adjacency index.
func (p *Pruned) mentorLinked(mentor, protege string) bool {
	m, okM := p.f.Lookup(mentor)
	t, okT := p.f.Lookup(protege)
	if !okM || !okT {
		return false
	}
	for _, candidate := range p.mentors(t) {
		if candidate == m {
			return true
		}
	}
	return false
}

// FullReachableSet returns every kept coach connected to the given id
// through mentor or protégé chains: the union of an upward traversal
// over mentors and a downward traversal over protégés, each a separate
// breadth-first pass from the start. The start id is always included
// and always first. Returns nil for unknown or excluded ids.
//
// The two passes are independent on purpose - the upward pass never
// turns downward at an ancestor, and vice versa, so the result is
// ancestors ∪ descendants rather than the full weakly connected
// component.
func (p *Pruned) FullReachableSet(id string) []string {
	start, ok := p.f.Lookup(id)
	if !ok || !p.a.Kept(start) {
		return nil
	}

	out := []int32{start}
	emitted := make([]bool, p.f.Len())
	emitted[start] = true

	out = p.bfs(start, out, emitted, p.mentors)
	out = p.bfs(start, out, emitted, p.proteges)

	return p.resolveIDs(out)
}

// bfs runs one breadth-first pass from start over the given adjacency
// direction, appending newly emitted nodes to out. Each pass keeps its
// own visited set; emitted only deduplicates the combined output.
func (p *Pruned) bfs(start int32, out []int32, emitted []bool, adj func(int32) []int32) []int32 {
	visited := make([]bool, p.f.Len())
	visited[start] = true
	queue := []int32{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj(cur) {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
			if !emitted[next] {
				emitted[next] = true
				out = append(out, next)
			}
		}
	}
	return out
}
