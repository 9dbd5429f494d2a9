package lineage

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxDepth caps the generation depth. Lineages longer than this
// compress into the deepest band instead of growing the canvas.
const DefaultMaxDepth = 5

// ErrCycle is returned by [Assign] when the root-reachable mentorship
// subgraph contains a directed cycle. Depth relaxation is a longest-path
// computation and has no meaningful answer for cyclic lineage data, so
// the input is rejected rather than silently flattened.
var ErrCycle = errors.New("mentorship cycle among kept coaches")

// Assignment holds per-coach generation depths for one snapshot.
//
// Depth is the capped longest-path distance from a coach down to the
// nearest root via mentorship edges: roots sit at 0, their mentors at 1,
// and so on up to the cap. Coaches with no path to any root are not kept
// and carry no meaningful depth.
//
// An Assignment is immutable after Assign and safe for concurrent readers.
type Assignment struct {
	f        *Forest
	kept     []bool
	depth    []int
	maxDepth int
	deepest  int
	keptN    int
}

// Assign computes the kept set and generation depths for a forest.
// Pass maxDepth <= 0 to use [DefaultMaxDepth].
//
// Phase 1 discovers the kept set: a FIFO traversal seeds every root and
// repeatedly expands not-yet-visited mentors. Everything unreachable
// from a root is excluded from all further processing.
//
// Phase 2 relaxes depths to a fixed point: full scans over kept
// mentorship edges push each non-root mentor to one above its deepest
// kept protégé, clamped at maxDepth, until a scan changes nothing.
// Roots stay pinned at 0 even when they mentor kept coaches.
//
// Returns ErrCycle if the kept subgraph is cyclic. Cycles are detected
// up front with a depth-first search so the error names the offending
// chain instead of surfacing as a non-converging relaxation.
func Assign(f *Forest, maxDepth int) (*Assignment, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	n := f.Len()
	a := &Assignment{
		f:        f,
		kept:     make([]bool, n),
		depth:    make([]int, n),
		maxDepth: maxDepth,
	}

	// Phase 1: upward reachability from the roots. FIFO order keeps
	// discovery deterministic. Depths stay 0 until relaxation.
	queue := make([]int32, 0, n)
	for _, r := range f.Roots() {
		if !a.kept[r] {
			a.kept[r] = true
			queue = append(queue, r)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, m := range f.Mentors(cur) {
			if !a.kept[m] {
				a.kept[m] = true
				queue = append(queue, m)
			}
		}
	}
	for _, kept := range a.kept {
		if kept {
			a.keptN++
		}
	}

	if cycle := findCycle(f, a.kept); cycle != nil {
		return nil, fmt.Errorf("%w: %s", ErrCycle, strings.Join(cycle, " -> "))
	}

	// Phase 2: longest-path relaxation. Depths only rise and are bounded
	// by maxDepth, so the scan count is capped defensively; exceeding it
	// means the cycle check above missed something.
	maxScans := maxDepth*n + 2
	for scan := 0; ; scan++ {
		if scan > maxScans {
			return nil, fmt.Errorf("%w: relaxation did not settle after %d scans", ErrCycle, scan)
		}
		changed := false
		for _, e := range f.Edges() {
			if !a.kept[e.Mentor] || !a.kept[e.Protege] {
				continue
			}
			if f.IsRoot(e.Mentor) {
				continue
			}
			candidate := a.depth[e.Protege] + 1
			if candidate > maxDepth {
				candidate = maxDepth
			}
			if candidate > a.depth[e.Mentor] {
				a.depth[e.Mentor] = candidate
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	for i, kept := range a.kept {
		if kept && a.depth[i] > a.deepest {
			a.deepest = a.depth[i]
		}
	}
	return a, nil
}

// Kept reports whether the coach at the given index survived pruning.
func (a *Assignment) Kept(i int32) bool { return a.kept[i] }

// Depth returns the generation depth for the coach at the given index.
// Only meaningful for kept coaches.
func (a *Assignment) Depth(i int32) int { return a.depth[i] }

// MaxDepth returns the depth cap used for this assignment.
func (a *Assignment) MaxDepth() int { return a.maxDepth }

// Deepest returns the highest depth actually assigned to a kept coach.
func (a *Assignment) Deepest() int { return a.deepest }

// KeptCount returns the number of coaches that survived pruning.
func (a *Assignment) KeptCount() int { return a.keptN }

// Depths returns an id → depth map covering the kept set.
// The returned map is a fresh copy and can be safely modified.
func (a *Assignment) Depths() map[string]int {
	m := make(map[string]int, a.keptN)
	for i, kept := range a.kept {
		if kept {
			m[a.f.ID(int32(i))] = a.depth[i]
		}
	}
	return m
}
