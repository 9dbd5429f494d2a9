package lineage

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/coachtree/coachtree/pkg/graph"
)

// randomLineage builds a random mentorship dataset that is acyclic by
// construction: mentorship edges only point from a higher coach index
// to a lower one. Coach 0 is always a root so the kept set is never
// empty. A few overlap connections and one edge to an unknown id are
// mixed in to exercise the tolerance rules.
func randomLineage(numCoaches, numEdges int, seed int64) graph.Dataset {
	rng := rand.New(rand.NewSource(seed))

	d := graph.Dataset{}
	for i := 0; i < numCoaches; i++ {
		d.Coaches = append(d.Coaches, graph.Coach{
			ID:          fmt.Sprintf("coach_%02d", i),
			Name:        fmt.Sprintf("Coach %02d", i),
			IsCurrentHC: i == 0 || rng.Intn(4) == 0,
		})
	}

	for e := 0; e < numEdges && numCoaches >= 2; e++ {
		protege := rng.Intn(numCoaches - 1)
		mentor := protege + 1 + rng.Intn(numCoaches-protege-1)
		d.Connections = append(d.Connections,
			mentorship(d.Coaches[mentor].ID, d.Coaches[protege].ID))

		if rng.Intn(5) == 0 {
			d.Connections = append(d.Connections,
				overlap(d.Coaches[protege].ID, d.Coaches[mentor].ID))
		}
	}

	if numCoaches >= 1 {
		d.Connections = append(d.Connections, mentorship("someone_unknown", d.Coaches[0].ID))
	}
	return d
}

func TestLineageProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60

	properties := gopter.NewProperties(parameters)

	numCoaches := gen.IntRange(2, 30)
	numEdges := gen.IntRange(0, 60)
	seed := gen.Int64()

	properties.Property("roots are kept and pinned at depth zero", prop.ForAll(
		func(n, e int, seed int64) bool {
			d := randomLineage(n, e, seed)
			f := Build(&d)
			a, err := Assign(f, 0)
			if err != nil {
				return false
			}
			for _, r := range f.Roots() {
				if !a.Kept(r) || a.Depth(r) != 0 {
					return false
				}
			}
			return true
		},
		numCoaches, numEdges, seed,
	))

	properties.Property("no kept depth exceeds the cap", prop.ForAll(
		func(n, e int, seed int64) bool {
			d := randomLineage(n, e, seed)
			f := Build(&d)
			a, err := Assign(f, 0)
			if err != nil {
				return false
			}
			for i := 0; i < f.Len(); i++ {
				if a.Kept(int32(i)) && a.Depth(int32(i)) > a.MaxDepth() {
					return false
				}
			}
			return a.Deepest() <= a.MaxDepth()
		},
		numCoaches, numEdges, seed,
	))

	properties.Property("render edges never point downhill unless the mentor is a root", prop.ForAll(
		func(n, e int, seed int64) bool {
			d := randomLineage(n, e, seed)
			f := Build(&d)
			a, err := Assign(f, 0)
			if err != nil {
				return false
			}
			for _, edge := range f.Edges() {
				if !a.Kept(edge.Mentor) || !a.Kept(edge.Protege) {
					continue
				}
				if f.IsRoot(edge.Mentor) {
					continue
				}
				if a.Depth(edge.Mentor) < a.Depth(edge.Protege) {
					return false
				}
			}
			return true
		},
		numCoaches, numEdges, seed,
	))

	properties.Property("identical input yields identical depths and layers", prop.ForAll(
		func(n, e int, seed int64) bool {
			d1 := randomLineage(n, e, seed)
			d2 := randomLineage(n, e, seed)

			f1 := Build(&d1)
			f2 := Build(&d2)
			a1, err1 := Assign(f1, 0)
			a2, err2 := Assign(f2, 0)
			if err1 != nil || err2 != nil {
				return false
			}

			depths1, depths2 := a1.Depths(), a2.Depths()
			if len(depths1) != len(depths2) {
				return false
			}
			for id, depth := range depths1 {
				if depths2[id] != depth {
					return false
				}
			}

			layers1 := Prune(f1, a1).Layers()
			layers2 := Prune(f2, a2).Layers()
			if len(layers1) != len(layers2) {
				return false
			}
			for depth, order := range layers1 {
				if !equalStrings(order, layers2[depth]) {
					return false
				}
			}
			return true
		},
		numCoaches, numEdges, seed,
	))

	properties.Property("pruning is a fixed point", prop.ForAll(
		func(n, e int, seed int64) bool {
			d := randomLineage(n, e, seed)
			f := Build(&d)
			a, err := Assign(f, 0)
			if err != nil {
				return false
			}
			p := Prune(f, a)

			again := graph.Dataset{Coaches: p.Coaches(), Connections: p.InfoEdges()}
			f2 := Build(&again)
			a2, err := Assign(f2, 0)
			if err != nil {
				return false
			}
			p2 := Prune(f2, a2)

			return len(p2.Coaches()) == len(p.Coaches()) &&
				len(p2.RenderEdges()) == len(p.RenderEdges()) &&
				len(p2.InfoEdges()) == len(p.InfoEdges())
		},
		numCoaches, numEdges, seed,
	))

	properties.Property("every kept coach reaches itself", prop.ForAll(
		func(n, e int, seed int64) bool {
			d := randomLineage(n, e, seed)
			f := Build(&d)
			a, err := Assign(f, 0)
			if err != nil {
				return false
			}
			p := Prune(f, a)

			for _, c := range p.Coaches() {
				reach := p.FullReachableSet(c.ID)
				if len(reach) == 0 || reach[0] != c.ID {
					return false
				}
				for _, id := range reach {
					if !p.Contains(id) {
						return false
					}
				}
			}
			return true
		},
		numCoaches, numEdges, seed,
	))

	properties.Property("ancestor chains are genuine mentor paths", prop.ForAll(
		func(n, e int, seed int64) bool {
			d := randomLineage(n, e, seed)
			f := Build(&d)
			a, err := Assign(f, 0)
			if err != nil {
				return false
			}
			p := Prune(f, a)

			for _, c := range p.Coaches() {
				chain := p.DeepestAncestorChain(c.ID)
				if len(chain) == 0 || chain[0] != c.ID {
					return false
				}
				for i := 0; i+1 < len(chain); i++ {
					if !p.mentorLinked(chain[i+1], chain[i]) {
						return false
					}
				}
			}
			return true
		},
		numCoaches, numEdges, seed,
	))

	properties.TestingRun(t)
}
