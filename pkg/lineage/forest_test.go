package lineage

import (
	"testing"

	"github.com/coachtree/coachtree/pkg/graph"
)

func coach(id, name string, root bool) graph.Coach {
	return graph.Coach{ID: id, Name: name, IsCurrentHC: root}
}

func mentorship(mentor, protege string) graph.Connection {
	return graph.Connection{Source: mentor, Target: protege, Type: graph.ConnectionMentorship}
}

func overlap(a, b string) graph.Connection {
	return graph.Connection{Source: a, Target: b, Type: graph.ConnectionOverlap}
}

func ids(f *Forest, idx []int32) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = f.ID(n)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuild_Adjacency(t *testing.T) {
	d := graph.Dataset{
		Coaches: []graph.Coach{
			coach("a", "A", true),
			coach("b", "B", false),
			coach("c", "C", false),
		},
		Connections: []graph.Connection{
			mentorship("c", "b"),
			mentorship("b", "a"),
			mentorship("c", "a"),
		},
	}

	f := Build(&d)

	if f.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", f.Len())
	}
	if f.EdgeCount() != 3 {
		t.Fatalf("EdgeCount() = %d, want 3", f.EdgeCount())
	}

	ai, _ := f.Lookup("a")
	if got := ids(f, f.Mentors(ai)); !equalStrings(got, []string{"b", "c"}) {
		t.Errorf("Mentors(a) = %v, want [b c]", got)
	}
	ci, _ := f.Lookup("c")
	if got := ids(f, f.Proteges(ci)); !equalStrings(got, []string{"b", "a"}) {
		t.Errorf("Proteges(c) = %v, want [b a]", got)
	}
}

func TestBuild_DuplicateEdgesPreserved(t *testing.T) {
	// Two separate stints under the same mentor stay two records
	d := graph.Dataset{
		Coaches: []graph.Coach{
			coach("a", "A", true),
			coach("m", "M", false),
		},
		Connections: []graph.Connection{
			{Source: "m", Target: "a", Type: graph.ConnectionMentorship, Years: "1990-1992"},
			{Source: "m", Target: "a", Type: graph.ConnectionMentorship, Years: "1995-1999"},
		},
	}

	f := Build(&d)

	if f.EdgeCount() != 2 {
		t.Fatalf("EdgeCount() = %d, want 2", f.EdgeCount())
	}
	ai, _ := f.Lookup("a")
	if got := ids(f, f.Mentors(ai)); !equalStrings(got, []string{"m", "m"}) {
		t.Errorf("Mentors(a) = %v, want duplicate [m m]", got)
	}
}

func TestBuild_OverlapExcluded(t *testing.T) {
	d := graph.Dataset{
		Coaches: []graph.Coach{
			coach("a", "A", true),
			coach("b", "B", false),
		},
		Connections: []graph.Connection{
			overlap("b", "a"),
		},
	}

	f := Build(&d)

	if f.EdgeCount() != 0 {
		t.Errorf("overlap connections must not become edges, got %d", f.EdgeCount())
	}
	ai, _ := f.Lookup("a")
	if len(f.Mentors(ai)) != 0 {
		t.Errorf("Mentors(a) = %v, want empty", ids(f, f.Mentors(ai)))
	}
}

func TestBuild_UnknownEndpointDropped(t *testing.T) {
	d := graph.Dataset{
		Coaches: []graph.Coach{
			coach("a", "A", true),
		},
		Connections: []graph.Connection{
			mentorship("ghost", "a"),
			mentorship("a", "phantom"),
		},
	}

	f := Build(&d)

	if f.EdgeCount() != 0 {
		t.Errorf("edges with unknown endpoints must be dropped, got %d", f.EdgeCount())
	}
}

func TestBuild_DuplicateCoachID(t *testing.T) {
	d := graph.Dataset{
		Coaches: []graph.Coach{
			coach("a", "First", true),
			coach("a", "Second", false),
		},
	}

	f := Build(&d)

	if f.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", f.Len())
	}
	i, _ := f.Lookup("a")
	if f.Coach(i).Name != "First" {
		t.Errorf("first occurrence must win, got %q", f.Coach(i).Name)
	}
}

func TestBuild_Roots(t *testing.T) {
	d := graph.Dataset{
		Coaches: []graph.Coach{
			coach("x", "X", false),
			coach("r1", "R1", true),
			coach("y", "Y", false),
			coach("r2", "R2", true),
		},
	}

	f := Build(&d)

	if got := ids(f, f.Roots()); !equalStrings(got, []string{"r1", "r2"}) {
		t.Errorf("Roots() = %v, want [r1 r2] in dataset order", got)
	}
	r1, _ := f.Lookup("r1")
	if !f.IsRoot(r1) {
		t.Error("IsRoot(r1) = false, want true")
	}
	x, _ := f.Lookup("x")
	if f.IsRoot(x) {
		t.Error("IsRoot(x) = true, want false")
	}
}

func TestBuild_Empty(t *testing.T) {
	d := graph.Dataset{}

	f := Build(&d)

	if f.Len() != 0 || f.EdgeCount() != 0 {
		t.Errorf("empty dataset: Len() = %d, EdgeCount() = %d, want 0, 0", f.Len(), f.EdgeCount())
	}
	if _, ok := f.Lookup("anyone"); ok {
		t.Error("Lookup on empty forest must miss")
	}
}
