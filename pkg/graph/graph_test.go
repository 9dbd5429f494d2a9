package graph

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testDataset() Dataset {
	return Dataset{
		Coaches: []Coach{
			{ID: "bill_walsh", Name: "Bill Walsh"},
			{ID: "mike_holmgren", Name: "Mike Holmgren"},
			{ID: "andy_reid", Name: "Andy Reid", CurrentTeam: "Kansas City Chiefs", IsCurrentHC: true},
			{ID: "john_harbaugh", Name: "John Harbaugh", CurrentTeam: "Baltimore Ravens", IsCurrentHC: true},
		},
		Connections: []Connection{
			{Source: "bill_walsh", Target: "mike_holmgren", Type: ConnectionMentorship, Years: "1986-1991"},
			{Source: "mike_holmgren", Target: "andy_reid", Type: ConnectionMentorship, Years: "1992-1998"},
			{Source: "andy_reid", Target: "john_harbaugh", Type: ConnectionMentorship, Years: "1998-2007"},
			{Source: "mike_holmgren", Target: "john_harbaugh", Type: ConnectionOverlap, Context: "NFC coaching clinics"},
		},
		TeamColors: map[string]string{
			"Kansas City Chiefs": "#E31837",
			"Baltimore Ravens":   "#241773",
		},
	}
}

func TestDatasetRoundTrip(t *testing.T) {
	d := testDataset()

	data, err := MarshalDataset(d)
	if err != nil {
		t.Fatalf("MarshalDataset failed: %v", err)
	}

	got, err := UnmarshalDataset(data)
	if err != nil {
		t.Fatalf("UnmarshalDataset failed: %v", err)
	}

	if len(got.Coaches) != len(d.Coaches) {
		t.Errorf("coaches: got %d, want %d", len(got.Coaches), len(d.Coaches))
	}
	if len(got.Connections) != len(d.Connections) {
		t.Errorf("connections: got %d, want %d", len(got.Connections), len(d.Connections))
	}
	if got.TeamColors["Kansas City Chiefs"] != "#E31837" {
		t.Errorf("team color lost in round trip: %q", got.TeamColors["Kansas City Chiefs"])
	}
	if got.Connections[0].Years != "1986-1991" {
		t.Errorf("connection years lost: %q", got.Connections[0].Years)
	}
}

func TestDatasetFileRoundTrip(t *testing.T) {
	d := testDataset()
	path := filepath.Join(t.TempDir(), "dataset.json")

	if err := WriteDatasetFile(d, path); err != nil {
		t.Fatalf("WriteDatasetFile failed: %v", err)
	}

	got, err := ReadDatasetFile(path)
	if err != nil {
		t.Fatalf("ReadDatasetFile failed: %v", err)
	}

	if len(got.Coaches) != 4 {
		t.Errorf("expected 4 coaches, got %d", len(got.Coaches))
	}

	// Written file should be pretty-printed for diffability
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back file: %v", err)
	}
	if !bytes.Contains(raw, []byte("\n  ")) {
		t.Error("expected indented JSON output")
	}
}

func TestReadDatasetErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"malformed json", `{"coaches": [`},
		{"wrong shape", `{"coaches": "not an array"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDataset(strings.NewReader(tt.input))
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReadDatasetFileMissing(t *testing.T) {
	_, err := ReadDatasetFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRoots(t *testing.T) {
	d := testDataset()

	roots := d.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	// Sorted by name: Andy Reid before John Harbaugh
	if roots[0].ID != "andy_reid" || roots[1].ID != "john_harbaugh" {
		t.Errorf("roots not sorted by name: [%s, %s]", roots[0].ID, roots[1].ID)
	}
}

func TestRootsTieBreak(t *testing.T) {
	d := Dataset{
		Coaches: []Coach{
			{ID: "smith_b", Name: "Mike Smith", IsCurrentHC: true},
			{ID: "smith_a", Name: "Mike Smith", IsCurrentHC: true},
		},
	}

	roots := d.Roots()
	if roots[0].ID != "smith_a" || roots[1].ID != "smith_b" {
		t.Errorf("name ties must break by id: [%s, %s]", roots[0].ID, roots[1].ID)
	}
}

func TestRootsEmpty(t *testing.T) {
	d := Dataset{Coaches: []Coach{{ID: "a", Name: "A"}}}
	if roots := d.Roots(); len(roots) != 0 {
		t.Errorf("expected no roots, got %d", len(roots))
	}
}

func TestCoachByID(t *testing.T) {
	d := testDataset()

	c, ok := d.CoachByID("mike_holmgren")
	if !ok {
		t.Fatal("expected to find mike_holmgren")
	}
	if c.Name != "Mike Holmgren" {
		t.Errorf("wrong coach: %q", c.Name)
	}

	if _, ok := d.CoachByID("nobody"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestMentorshipConnections(t *testing.T) {
	d := testDataset()

	conns := d.MentorshipConnections()
	if len(conns) != 3 {
		t.Fatalf("expected 3 mentorship connections, got %d", len(conns))
	}
	for _, c := range conns {
		if !c.IsMentorship() {
			t.Errorf("overlap connection leaked through: %s -> %s", c.Source, c.Target)
		}
	}

	// Input order preserved
	if conns[0].Source != "bill_walsh" || conns[2].Source != "andy_reid" {
		t.Error("mentorship connections must preserve input order")
	}
}

func TestMentorshipConnectionsDuplicatesPreserved(t *testing.T) {
	d := Dataset{
		Coaches: []Coach{
			{ID: "a", Name: "A"},
			{ID: "b", Name: "B"},
		},
		Connections: []Connection{
			{Source: "a", Target: "b", Type: ConnectionMentorship, Years: "1990-1995"},
			{Source: "a", Target: "b", Type: ConnectionMentorship, Years: "2001-2003"},
		},
	}

	conns := d.MentorshipConnections()
	if len(conns) != 2 {
		t.Fatalf("duplicate mentorship records must survive filtering, got %d", len(conns))
	}
	if conns[0].Years == conns[1].Years {
		t.Error("expected both distinct stint records")
	}
}

func TestTeamColor(t *testing.T) {
	d := testDataset()

	if got := d.TeamColor("Kansas City Chiefs"); got != "#E31837" {
		t.Errorf("TeamColor = %q, want #E31837", got)
	}
	if got := d.TeamColor("Unknown Team"); got != "" {
		t.Errorf("expected empty color for unknown team, got %q", got)
	}

	var empty Dataset
	if got := empty.TeamColor("Anything"); got != "" {
		t.Errorf("expected empty color with nil map, got %q", got)
	}
}

func TestCompareCoaches(t *testing.T) {
	tests := []struct {
		name string
		a, b Coach
		want int // sign only
	}{
		{"by name", Coach{ID: "z", Name: "Alpha"}, Coach{ID: "a", Name: "Beta"}, -1},
		{"name tie by id", Coach{ID: "a", Name: "Same"}, Coach{ID: "b", Name: "Same"}, -1},
		{"equal", Coach{ID: "a", Name: "Same"}, Coach{ID: "a", Name: "Same"}, 0},
		{"reversed", Coach{ID: "a", Name: "Beta"}, Coach{ID: "z", Name: "Alpha"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareCoaches(tt.a, tt.b)
			switch {
			case tt.want < 0 && got >= 0:
				t.Errorf("CompareCoaches = %d, want negative", got)
			case tt.want == 0 && got != 0:
				t.Errorf("CompareCoaches = %d, want zero", got)
			case tt.want > 0 && got <= 0:
				t.Errorf("CompareCoaches = %d, want positive", got)
			}
		})
	}
}
