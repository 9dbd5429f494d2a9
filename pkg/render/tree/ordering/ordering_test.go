package ordering

import (
	"reflect"
	"testing"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/lineage"
)

func coach(id, name string, root bool) graph.Coach {
	return graph.Coach{ID: id, Name: name, IsCurrentHC: root}
}

func mentorship(mentor, protege string) graph.Connection {
	return graph.Connection{Source: mentor, Target: protege, Type: graph.ConnectionMentorship}
}

func prune(t *testing.T, d graph.Dataset) *lineage.Pruned {
	t.Helper()
	f := lineage.Build(&d)
	a, err := lineage.Assign(f, 0)
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	return lineage.Prune(f, a)
}

// crossedDataset builds two generations whose lexical initial order
// guarantees a crossing:
//
//	mentors:  M1  M2      (M1 mentors B, M2 mentors A)
//	roots:    A   B
//
// Lexically the layers start as [A B] and [M1 M2], which crosses;
// swapping either layer resolves it.
func crossedDataset() graph.Dataset {
	return graph.Dataset{
		Coaches: []graph.Coach{
			coach("a", "A", true),
			coach("b", "B", true),
			coach("m1", "M1", false),
			coach("m2", "M2", false),
		},
		Connections: []graph.Connection{
			mentorship("m1", "b"),
			mentorship("m2", "a"),
		},
	}
}

func TestBarycentric_ResolvesCrossing(t *testing.T) {
	p := prune(t, crossedDataset())

	orders := Barycentric{}.OrderLayers(p)

	if got := p.CountCrossings(orders); got != 0 {
		t.Errorf("crossings after ordering = %d, want 0 (orders %v)", got, orders)
	}
}

func TestBarycentric_Deterministic(t *testing.T) {
	p := prune(t, crossedDataset())

	first := Barycentric{}.OrderLayers(p)
	for run := 0; run < 5; run++ {
		if got := (Barycentric{}).OrderLayers(p); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d produced %v, first run produced %v", run, got, first)
		}
	}
}

func TestBarycentric_SingleLayer(t *testing.T) {
	p := prune(t, graph.Dataset{
		Coaches: []graph.Coach{
			coach("b", "Bill", true),
			coach("a", "Andy", true),
		},
	})

	orders := Barycentric{}.OrderLayers(p)

	// No mentors anywhere: the lexical initial order must survive.
	want := []string{"a", "b"}
	if !reflect.DeepEqual(orders[0], want) {
		t.Errorf("orders[0] = %v, want %v", orders[0], want)
	}
}

func TestBarycentric_EmptySnapshot(t *testing.T) {
	p := prune(t, graph.Dataset{Coaches: []graph.Coach{coach("x", "X", false)}})

	orders := Barycentric{}.OrderLayers(p)
	if len(orders) != 0 {
		t.Errorf("orders = %v, want empty map", orders)
	}
}

func TestBarycentric_NoNeighborRetainsKey(t *testing.T) {
	// S has no protégés in the tree and must not jump around during
	// up-sweeps: it keeps its key and stays put relative to M.
	d := graph.Dataset{
		Coaches: []graph.Coach{
			coach("a", "A", true),
			coach("m", "M", false),
			coach("s", "S", false),
		},
		Connections: []graph.Connection{
			mentorship("m", "a"),
			mentorship("s", "a"),
			mentorship("m", "s"), // pushes M a generation above S
		},
	}
	p := prune(t, d)

	first := Barycentric{}.OrderLayers(p)
	second := Barycentric{}.OrderLayers(p)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ordering not stable: %v vs %v", first, second)
	}
}

func TestBarycentric_ConvergeNotWorseThanFixed(t *testing.T) {
	p := prune(t, crossedDataset())

	fixed := Barycentric{}.OrderLayers(p)
	converged := Barycentric{Converge: true}.OrderLayers(p)

	if got, want := p.CountCrossings(converged), p.CountCrossings(fixed); got > want {
		t.Errorf("converge mode produced %d crossings, fixed-pass mode %d", got, want)
	}
}
