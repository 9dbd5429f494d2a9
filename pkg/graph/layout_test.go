package graph

import (
	"path/filepath"
	"strings"
	"testing"
)

func testLayout() Layout {
	return Layout{
		VizType: VizTypeTree,
		Width:   500,
		Height:  430,
		Nodes: []PositionedNode{
			{ID: "mentor", Name: "Mentor", Depth: 1, Order: 0, X: 250, Y: 190},
			{ID: "protege", Name: "Protégé", Root: true, Depth: 0, Order: 0, X: 250, Y: 310},
		},
		Edges: []RenderEdge{
			{
				Source: "mentor",
				Target: "protege",
				Years:  "1999-2004",
				Curve:  Curve{X1: 250, Y1: 213, CX1: 250, CY1: 250, CX2: 250, CY2: 250, X2: 250, Y2: 287},
			},
		},
		Layers: map[int][]string{
			0: {"protege"},
			1: {"mentor"},
		},
		TeamColors: map[string]string{"Green Bay Packers": "#203731"},
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	l := testLayout()

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout failed: %v", err)
	}

	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout failed: %v", err)
	}

	if got.VizType != VizTypeTree {
		t.Errorf("viz type: got %q, want %q", got.VizType, VizTypeTree)
	}
	if len(got.Nodes) != 2 || len(got.Edges) != 1 {
		t.Errorf("got %d nodes / %d edges, want 2 / 1", len(got.Nodes), len(got.Edges))
	}
	if got.Edges[0].Curve.Y2 != 287 {
		t.Errorf("curve geometry lost: y2 = %v", got.Edges[0].Curve.Y2)
	}
	if len(got.Layers[1]) != 1 || got.Layers[1][0] != "mentor" {
		t.Errorf("layers lost in round trip: %v", got.Layers)
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	l := testLayout()
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile failed: %v", err)
	}

	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile failed: %v", err)
	}
	if got.Width != 500 || got.Height != 430 {
		t.Errorf("canvas dimensions lost: %vx%v", got.Width, got.Height)
	}
}

func TestUnmarshalLayoutValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		check   func(t *testing.T, l Layout)
	}{
		{
			name:    "empty viz type defaults to tree",
			input:   `{"nodes": [{"id": "a", "name": "A"}]}`,
			wantErr: false,
			check: func(t *testing.T, l Layout) {
				if !l.IsTree() {
					t.Errorf("expected tree default, got %q", l.VizType)
				}
			},
		},
		{
			name:    "tree without nodes rejected",
			input:   `{"viz_type": "tree", "width": 100}`,
			wantErr: true,
		},
		{
			name:    "nodelink without dot rejected",
			input:   `{"viz_type": "nodelink", "engine": "dot"}`,
			wantErr: true,
		},
		{
			name:    "nodelink with dot accepted",
			input:   `{"viz_type": "nodelink", "dot": "digraph {}", "engine": "dot"}`,
			wantErr: false,
			check: func(t *testing.T, l Layout) {
				if !l.IsNodelink() {
					t.Error("expected nodelink layout")
				}
			},
		},
		{
			name:    "malformed json",
			input:   `{"viz_type":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := UnmarshalLayout([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, l)
			}
		})
	}
}

func TestNodeByID(t *testing.T) {
	l := testLayout()

	n, ok := l.NodeByID("mentor")
	if !ok {
		t.Fatal("expected to find mentor node")
	}
	if n.Depth != 1 {
		t.Errorf("node depth = %d, want 1", n.Depth)
	}

	if _, ok := l.NodeByID("missing"); ok {
		t.Error("expected miss for unknown node id")
	}
}

func TestCurvePath(t *testing.T) {
	c := Curve{X1: 100, Y1: 430, CX1: 100, CY1: 370, CX2: 250.5, CY2: 370, X2: 250, Y2: 310}

	got := c.Path()
	want := "M 100.0 430.0 C 100.0 370.0, 250.5 370.0, 250.0 310.0"
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	if !strings.HasPrefix(got, "M ") || !strings.Contains(got, " C ") {
		t.Errorf("path must be a cubic Bézier command: %q", got)
	}
}
