package lineage

import (
	"github.com/coachtree/coachtree/pkg/graph"
)

// Forest is an index-based adjacency view over the mentorship edges of a
// dataset snapshot. Coaches are assigned dense integer indices, and the
// mentor/protégé lists are stored as flat arrays carved out of two shared
// backing slices (compressed sparse rows), built with a two-pass counted
// allocation: degrees are counted first, exact-size arrays are allocated,
// then filled in connection input order.
//
// Duplicate mentorship records between the same pair are preserved as
// separate adjacency entries; traversals must tolerate them. Connections
// whose endpoints are not in the coach set are dropped during the build
// and never surface downstream.
//
// A Forest is immutable after Build and safe for concurrent readers.
// The zero value is not usable - always construct with [Build].
type Forest struct {
	data    *graph.Dataset
	ids     []string
	coaches []graph.Coach
	index   map[string]int32
	isRoot  []bool
	roots   []int32

	// CSR adjacency. Mentors of coach i occupy
	// mentorIdx[mentorOff[i]:mentorOff[i+1]]; protégés likewise.
	mentorOff  []int32
	mentorIdx  []int32
	protegeOff []int32
	protegeIdx []int32

	edges []MentorshipEdge
}

// MentorshipEdge is a mentorship connection with both endpoints resolved
// to forest indices. Conn carries the original record for metadata.
type MentorshipEdge struct {
	Mentor  int32
	Protege int32
	Conn    graph.Connection
}

// Build constructs the adjacency view for a dataset snapshot.
//
// Coaches keep their dataset order; if the same id appears twice, the
// first occurrence wins. Only mentorship-typed connections contribute
// edges. Build never fails: malformed references degrade to absent
// edges, which is the tolerance the layout pipeline relies on.
func Build(d *graph.Dataset) *Forest {
	f := &Forest{
		data:    d,
		ids:     make([]string, 0, len(d.Coaches)),
		coaches: make([]graph.Coach, 0, len(d.Coaches)),
		index:   make(map[string]int32, len(d.Coaches)),
		isRoot:  make([]bool, 0, len(d.Coaches)),
	}

	for _, c := range d.Coaches {
		if _, exists := f.index[c.ID]; exists {
			continue
		}
		i := int32(len(f.ids))
		f.index[c.ID] = i
		f.ids = append(f.ids, c.ID)
		f.coaches = append(f.coaches, c)
		f.isRoot = append(f.isRoot, c.IsCurrentHC)
		if c.IsCurrentHC {
			f.roots = append(f.roots, i)
		}
	}
	n := len(f.ids)

	// Pass 1: count per-coach degrees over resolvable mentorship edges.
	mentorCnt := make([]int32, n)
	protegeCnt := make([]int32, n)
	edgeCount := 0
	for _, c := range d.Connections {
		m, p, ok := f.resolve(c)
		if !ok {
			continue
		}
		protegeCnt[m]++
		mentorCnt[p]++
		edgeCount++
	}

	f.mentorOff = make([]int32, n+1)
	f.protegeOff = make([]int32, n+1)
	for i := 0; i < n; i++ {
		f.mentorOff[i+1] = f.mentorOff[i] + mentorCnt[i]
		f.protegeOff[i+1] = f.protegeOff[i] + protegeCnt[i]
	}
	f.mentorIdx = make([]int32, edgeCount)
	f.protegeIdx = make([]int32, edgeCount)
	f.edges = make([]MentorshipEdge, 0, edgeCount)

	// Pass 2: fill, reusing the count slices as write cursors.
	for i := range mentorCnt {
		mentorCnt[i] = 0
		protegeCnt[i] = 0
	}
	for _, c := range d.Connections {
		m, p, ok := f.resolve(c)
		if !ok {
			continue
		}
		f.protegeIdx[f.protegeOff[m]+protegeCnt[m]] = p
		protegeCnt[m]++
		f.mentorIdx[f.mentorOff[p]+mentorCnt[p]] = m
		mentorCnt[p]++
		f.edges = append(f.edges, MentorshipEdge{Mentor: m, Protege: p, Conn: c})
	}

	return f
}

// resolve maps a connection to endpoint indices. Returns false for
// non-mentorship connections and for endpoints missing from the coach set.
func (f *Forest) resolve(c graph.Connection) (mentor, protege int32, ok bool) {
	if !c.IsMentorship() {
		return 0, 0, false
	}
	m, okM := f.index[c.Source]
	p, okP := f.index[c.Target]
	if !okM || !okP {
		return 0, 0, false
	}
	return m, p, true
}

// Len returns the number of distinct coaches in the forest.
func (f *Forest) Len() int { return len(f.ids) }

// Lookup returns the index for a coach id, or false if unknown.
func (f *Forest) Lookup(id string) (int32, bool) {
	i, ok := f.index[id]
	return i, ok
}

// ID returns the coach id at the given index.
func (f *Forest) ID(i int32) string { return f.ids[i] }

// Coach returns the coach record at the given index.
func (f *Forest) Coach(i int32) graph.Coach { return f.coaches[i] }

// IsRoot reports whether the coach at the given index is a root
// (currently active head coach, pinned at generation 0).
func (f *Forest) IsRoot(i int32) bool { return f.isRoot[i] }

// Roots returns the indices of all root coaches in dataset order.
// The returned slice should not be modified - use it as a read-only view.
func (f *Forest) Roots() []int32 { return f.roots }

// Mentors returns the indices of coaches who mentored coach i, in
// connection input order with duplicate records preserved.
// The returned slice should not be modified - use it as a read-only view.
func (f *Forest) Mentors(i int32) []int32 {
	return f.mentorIdx[f.mentorOff[i]:f.mentorOff[i+1]]
}

// Proteges returns the indices of coaches whom coach i mentored, in
// connection input order with duplicate records preserved.
// The returned slice should not be modified - use it as a read-only view.
func (f *Forest) Proteges(i int32) []int32 {
	return f.protegeIdx[f.protegeOff[i]:f.protegeOff[i+1]]
}

// Edges returns all resolved mentorship edges in connection input order.
// The returned slice should not be modified - use it as a read-only view.
func (f *Forest) Edges() []MentorshipEdge { return f.edges }

// EdgeCount returns the number of resolved mentorship edges.
func (f *Forest) EdgeCount() int { return len(f.edges) }

// Dataset returns the snapshot this forest was built from.
func (f *Forest) Dataset() *graph.Dataset { return f.data }
