package lineage

import (
	"slices"

	"github.com/coachtree/coachtree/pkg/graph"
)

// Pruned is the root-reachable view of a snapshot: the kept coaches,
// the render edge set (mentorship edges with both endpoints kept), the
// informational edge set (connections of any type with both endpoints
// kept), and a mentor/protégé adjacency index rebuilt over the render
// edges alone.
//
// The render set is always a subset of the informational set, which is
// a subset of the full connection list. Pruning is a fixed point:
// re-pruning an already-pruned snapshot changes nothing.
//
// All downstream algorithms (ordering, coordinates, traversal queries)
// read this view and never mutate it, so a Pruned is safe for
// concurrent readers.
type Pruned struct {
	f *Forest
	a *Assignment

	coaches []graph.Coach
	render  []graph.Connection
	info    []graph.Connection

	// CSR adjacency restricted to the render edge set, same layout and
	// ordering rules as the forest's.
	mentorOff  []int32
	mentorIdx  []int32
	protegeOff []int32
	protegeIdx []int32
}

// Prune restricts a snapshot to the kept set computed by [Assign].
func Prune(f *Forest, a *Assignment) *Pruned {
	p := &Pruned{
		f:       f,
		a:       a,
		coaches: make([]graph.Coach, 0, a.KeptCount()),
	}

	for i := 0; i < f.Len(); i++ {
		if a.Kept(int32(i)) {
			p.coaches = append(p.coaches, f.Coach(int32(i)))
		}
	}

	for _, e := range f.Edges() {
		if a.Kept(e.Mentor) && a.Kept(e.Protege) {
			p.render = append(p.render, e.Conn)
		}
	}

	for _, c := range f.Dataset().Connections {
		m, okM := f.Lookup(c.Source)
		t, okT := f.Lookup(c.Target)
		if okM && okT && a.Kept(m) && a.Kept(t) {
			p.info = append(p.info, c)
		}
	}

	p.buildAdjacency()
	return p
}

// buildAdjacency rebuilds the CSR index over the render edge set using
// the same two-pass counted allocation as the forest build. Traversal
// queries run against this index so excluded coaches can never leak
// into query results.
func (p *Pruned) buildAdjacency() {
	n := p.f.Len()
	mentorCnt := make([]int32, n)
	protegeCnt := make([]int32, n)

	kept := make([]MentorshipEdge, 0, len(p.render))
	for _, e := range p.f.Edges() {
		if p.a.Kept(e.Mentor) && p.a.Kept(e.Protege) {
			kept = append(kept, e)
			protegeCnt[e.Mentor]++
			mentorCnt[e.Protege]++
		}
	}

	p.mentorOff = make([]int32, n+1)
	p.protegeOff = make([]int32, n+1)
	for i := 0; i < n; i++ {
		p.mentorOff[i+1] = p.mentorOff[i] + mentorCnt[i]
		p.protegeOff[i+1] = p.protegeOff[i] + protegeCnt[i]
	}
	p.mentorIdx = make([]int32, len(kept))
	p.protegeIdx = make([]int32, len(kept))

	for i := range mentorCnt {
		mentorCnt[i] = 0
		protegeCnt[i] = 0
	}
	for _, e := range kept {
		p.protegeIdx[p.protegeOff[e.Mentor]+protegeCnt[e.Mentor]] = e.Protege
		protegeCnt[e.Mentor]++
		p.mentorIdx[p.mentorOff[e.Protege]+mentorCnt[e.Protege]] = e.Mentor
		mentorCnt[e.Protege]++
	}
}

// mentors returns kept mentors of node i in render-edge input order.
func (p *Pruned) mentors(i int32) []int32 {
	return p.mentorIdx[p.mentorOff[i]:p.mentorOff[i+1]]
}

// proteges returns kept protégés of node i in render-edge input order.
func (p *Pruned) proteges(i int32) []int32 {
	return p.protegeIdx[p.protegeOff[i]:p.protegeOff[i+1]]
}

// Dataset returns the snapshot this view was pruned from.
func (p *Pruned) Dataset() *graph.Dataset { return p.f.Dataset() }

// Coaches returns the kept coaches in dataset order.
// The returned slice should not be modified - use it as a read-only view.
func (p *Pruned) Coaches() []graph.Coach { return p.coaches }

// RenderEdges returns mentorship connections with both endpoints kept,
// in input order with duplicates preserved. These are the edges that
// get draw geometry.
// The returned slice should not be modified - use it as a read-only view.
func (p *Pruned) RenderEdges() []graph.Connection { return p.render }

// InfoEdges returns connections of any type with both endpoints kept,
// in input order. Overlap connections appear here and only here.
// The returned slice should not be modified - use it as a read-only view.
func (p *Pruned) InfoEdges() []graph.Connection { return p.info }

// Contains reports whether the coach id is in the kept set.
func (p *Pruned) Contains(id string) bool {
	i, ok := p.f.Lookup(id)
	return ok && p.a.Kept(i)
}

// Depth returns the generation depth for a kept coach id.
// The second return is false for unknown or excluded coaches.
func (p *Pruned) Depth(id string) (int, bool) {
	i, ok := p.f.Lookup(id)
	if !ok || !p.a.Kept(i) {
		return 0, false
	}
	return p.a.Depth(i), true
}

// Deepest returns the highest assigned generation depth.
func (p *Pruned) Deepest() int { return p.a.Deepest() }

// MentorsOf returns the kept mentors of a coach id in render-edge input
// order, duplicates preserved. Returns nil for unknown or excluded ids.
func (p *Pruned) MentorsOf(id string) []string {
	i, ok := p.f.Lookup(id)
	if !ok || !p.a.Kept(i) {
		return nil
	}
	return p.resolveIDs(p.mentors(i))
}

// ProtegesOf returns the kept protégés of a coach id in render-edge
// input order, duplicates preserved. Returns nil for unknown or
// excluded ids.
func (p *Pruned) ProtegesOf(id string) []string {
	i, ok := p.f.Lookup(id)
	if !ok || !p.a.Kept(i) {
		return nil
	}
	return p.resolveIDs(p.proteges(i))
}

func (p *Pruned) resolveIDs(idx []int32) []string {
	if len(idx) == 0 {
		return nil
	}
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = p.f.ID(n)
	}
	return out
}

// Layers groups kept coach ids by generation depth. Each layer starts
// in lexical order (display name, ties by id); the crossing minimizer
// reorders from there, so this ordering is part of the deterministic
// contract.
// The returned map is a fresh copy and can be safely modified.
func (p *Pruned) Layers() map[int][]string {
	byDepth := make(map[int][]graph.Coach)
	for i := 0; i < p.f.Len(); i++ {
		if p.a.Kept(int32(i)) {
			d := p.a.Depth(int32(i))
			byDepth[d] = append(byDepth[d], p.f.Coach(int32(i)))
		}
	}

	layers := make(map[int][]string, len(byDepth))
	for d, coaches := range byDepth {
		slices.SortFunc(coaches, graph.CompareCoaches)
		ids := make([]string, len(coaches))
		for i, c := range coaches {
			ids[i] = c.ID
		}
		layers[d] = ids
	}
	return layers
}

// ConnectionsFor returns every informational connection touching the
// given coach, labeled with the direction as seen from that coach:
// the source of an edge is the mentor, so an inbound edge reads
// "mentored by" and an outbound edge reads "mentor of".
// Returns nil for unknown or excluded ids.
func (p *Pruned) ConnectionsFor(id string) []graph.ConnectionInfo {
	if !p.Contains(id) {
		return nil
	}
	var out []graph.ConnectionInfo
	for _, c := range p.info {
		switch id {
		case c.Target:
			out = append(out, graph.ConnectionInfo{
				Other:     c.Source,
				Direction: graph.DirectionMentoredBy,
				Type:      c.Type,
				Years:     c.Years,
				Context:   c.Context,
			})
		case c.Source:
			out = append(out, graph.ConnectionInfo{
				Other:     c.Target,
				Direction: graph.DirectionMentorOf,
				Type:      c.Type,
				Years:     c.Years,
				Context:   c.Context,
			})
		}
	}
	return out
}

// ConnectionIndex returns the full per-coach connection lookup for
// every kept coach, keyed by id. This is what the sidebar panel renders.
// The returned map is a fresh copy and can be safely modified.
func (p *Pruned) ConnectionIndex() map[string][]graph.ConnectionInfo {
	index := make(map[string][]graph.ConnectionInfo, len(p.coaches))
	for _, c := range p.coaches {
		if conns := p.ConnectionsFor(c.ID); conns != nil {
			index[c.ID] = conns
		}
	}
	return index
}
