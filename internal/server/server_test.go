package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/pipeline"
	"github.com/coachtree/coachtree/pkg/store"
)

func testDataset() *graph.Dataset {
	return &graph.Dataset{
		Coaches: []graph.Coach{
			{ID: "reid", Name: "Andy Reid", CurrentTeam: "Chiefs", IsCurrentHC: true},
			{ID: "holmgren", Name: "Mike Holmgren"},
			{ID: "seifert", Name: "George Seifert"},
			{ID: "walsh", Name: "Bill Walsh"},
		},
		Connections: []graph.Connection{
			{Source: "walsh", Target: "holmgren", Type: graph.ConnectionMentorship},
			{Source: "walsh", Target: "seifert", Type: graph.ConnectionMentorship},
			{Source: "holmgren", Target: "reid", Type: graph.ConnectionMentorship},
			{Source: "seifert", Target: "reid", Type: graph.ConnectionOverlap, Years: "1989-1991"},
		},
		TeamColors: map[string]string{"Chiefs": "#e31837"},
	}
}

// newTestServer builds a server with an in-memory store, a cacheless
// runner, and the fixture dataset as default.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)

	s, err := New(Config{Dataset: testDataset()}, runner, store.NewMemoryStore(), logger)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, v any) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decoding %s: %v", url, err)
		}
	}
	return resp
}

func getBody(t *testing.T, url string) (int, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading %s: %v", url, err)
	}
	return resp.StatusCode, raw
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, ts.URL+"/healthz", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	resp := getJSON(t, ts.URL+"/healthz", nil)
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response missing X-Request-ID header")
	}

	// A caller-supplied id is echoed back.
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "my-trace-id")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if got := resp2.Header.Get("X-Request-ID"); got != "my-trace-id" {
		t.Errorf("X-Request-ID = %q, want %q", got, "my-trace-id")
	}
}

func TestChain(t *testing.T) {
	ts := newTestServer(t)

	var body chainResponse
	resp := getJSON(t, ts.URL+"/api/coaches/reid/chain", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	want := []string{"reid", "holmgren", "walsh"}
	if !slices.Equal(body.Chain, want) {
		t.Errorf("chain = %v, want %v", body.Chain, want)
	}
	if len(body.Edges) != 2 {
		t.Errorf("edges = %d, want 2", len(body.Edges))
	}
}

func TestChainUnknownCoach(t *testing.T) {
	ts := newTestServer(t)

	resp := getJSON(t, ts.URL+"/api/coaches/nobody/chain", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestReach(t *testing.T) {
	ts := newTestServer(t)

	var body reachResponse
	resp := getJSON(t, ts.URL+"/api/coaches/walsh/reach", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	if len(body.Reach) == 0 || body.Reach[0] != "walsh" {
		t.Fatalf("reach = %v, want walsh first", body.Reach)
	}
	for _, id := range []string{"holmgren", "reid"} {
		if !slices.Contains(body.Reach, id) {
			t.Errorf("reach %v missing %q", body.Reach, id)
		}
	}
	// seifert is not root-reachable and must not appear.
	if slices.Contains(body.Reach, "seifert") {
		t.Errorf("reach %v contains pruned coach seifert", body.Reach)
	}
}

func TestConnections(t *testing.T) {
	ts := newTestServer(t)

	var body connectionsResponse
	resp := getJSON(t, ts.URL+"/api/coaches/reid/connections", &body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	found := false
	for _, c := range body.Connections {
		if c.Other == "holmgren" && c.Direction == graph.DirectionMentoredBy {
			found = true
		}
	}
	if !found {
		t.Errorf("connections %+v missing holmgren mentored-by entry", body.Connections)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	ts := newTestServer(t)

	reqBody, err := json.Marshal(map[string]any{
		"dataset": testDataset(),
		"formats": []string{"json", "svg"},
	})
	if err != nil {
		t.Fatal(err)
	}

	resp, err := http.Post(ts.URL+"/api/layout", "application/json", bytes.NewReader(reqBody))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 200; body: %s", resp.StatusCode, raw)
	}

	var body layoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.Layout.Nodes) != 3 {
		t.Errorf("layout nodes = %d, want 3", len(body.Layout.Nodes))
	}
	if body.Stats.KeptCount != 3 {
		t.Errorf("kept count = %d, want 3", body.Stats.KeptCount)
	}
	if !bytes.Contains(body.Artifacts["svg"], []byte("<svg")) {
		t.Error("svg artifact missing <svg")
	}
}

func TestLayoutRequiresDataset(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/layout", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	ts := newTestServer(t)

	data, err := json.Marshal(testDataset())
	if err != nil {
		t.Fatal(err)
	}

	// Store a dataset snapshot.
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/snapshots/season-2025", bytes.NewReader(data))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	var meta store.Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("put status = %d, want 200", resp.StatusCode)
	}
	if meta.Name != "season-2025" || meta.Kind != store.KindDataset {
		t.Errorf("meta = %+v", meta)
	}

	// List includes it.
	var metas []store.Metadata
	if resp := getJSON(t, ts.URL+"/api/snapshots", &metas); resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	if len(metas) != 1 {
		t.Fatalf("list = %d entries, want 1", len(metas))
	}

	// Raw fetch round-trips the stored payload.
	status, raw := getBody(t, ts.URL+"/api/snapshots/season-2025?raw=1")
	if status != http.StatusOK {
		t.Fatalf("raw status = %d, want 200", status)
	}
	var d graph.Dataset
	if err := json.Unmarshal(raw, &d); err != nil {
		t.Fatalf("raw snapshot does not parse: %v", err)
	}
	if len(d.Coaches) != 4 {
		t.Errorf("raw coaches = %d, want 4", len(d.Coaches))
	}

	// Queries can target the snapshot.
	var chain chainResponse
	resp = getJSON(t, ts.URL+"/api/coaches/reid/chain?snapshot=season-2025", &chain)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot chain status = %d, want 200", resp.StatusCode)
	}
	if len(chain.Chain) != 3 {
		t.Errorf("snapshot chain = %v", chain.Chain)
	}

	// Delete, then a lookup misses.
	req, _ = http.NewRequest(http.MethodDelete, ts.URL+"/api/snapshots/season-2025", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}
	if resp := getJSON(t, ts.URL+"/api/snapshots/season-2025", nil); resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestSnapshotRejectsInvalidDataset(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/snapshots/bad", strings.NewReader(`{"coaches": []}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	// Generate one request so the counter has a sample.
	getJSON(t, ts.URL+"/healthz", nil)

	status, raw := getBody(t, ts.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !bytes.Contains(raw, []byte("coachtree_http_requests_total")) {
		t.Error("metrics output missing coachtree_http_requests_total")
	}
}
