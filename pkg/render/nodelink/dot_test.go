package nodelink

import (
	"strings"
	"testing"

	"github.com/coachtree/coachtree/pkg/graph"
)

func testLayout() graph.Layout {
	return graph.Layout{
		VizType: graph.VizTypeTree,
		Nodes: []graph.PositionedNode{
			{ID: "m", Name: "Marv", Depth: 1},
			{ID: "a", Name: "Andy", Team: "Sharks", Root: true, Depth: 0},
			{ID: "b", Name: "Bill", Root: true, Depth: 0},
		},
		Edges: []graph.RenderEdge{
			{Source: "m", Target: "a"},
			{Source: "m", Target: "b"},
		},
		Layers: map[int][]string{0: {"a", "b"}, 1: {"m"}},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})

	for _, want := range []string{
		"digraph lineage {",
		"rankdir=BT;",
		`"m" -> "a";`,
		`"m" -> "b";`,
		`{ rank=same; /* generation 0 */ "a"; "b"; }`,
		`label="Andy"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOT_RootAccent(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})

	lines := strings.Split(dot, "\n")
	for _, line := range lines {
		if strings.Contains(line, `"a" [`) && !strings.Contains(line, "fillcolor") {
			t.Errorf("root node missing accent: %s", line)
		}
		if strings.Contains(line, `"m" [`) && strings.Contains(line, "fillcolor=\"#2c3e50\"") {
			t.Errorf("non-root node has root accent: %s", line)
		}
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(testLayout(), Options{Detailed: true})

	if !strings.Contains(dot, "generation: 1") {
		t.Error("detailed labels missing generation depth")
	}
	if !strings.Contains(dot, "team: Sharks") {
		t.Error("detailed labels missing team")
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	first := ToDOT(testLayout(), Options{})
	for i := 0; i < 3; i++ {
		if got := ToDOT(testLayout(), Options{}); got != first {
			t.Fatal("DOT output differs between runs")
		}
	}
}

func TestToDOT_FallbackRanks(t *testing.T) {
	l := testLayout()
	l.Layers = nil
	dot := ToDOT(l, Options{})
	if !strings.Contains(dot, "rank=same") {
		t.Error("expected rank groups derived from node depths")
	}
}
