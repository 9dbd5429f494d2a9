package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	stored := map[string]string{"season": "2025"}
	if err := c.Set("https://example.com/tree.json", stored); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got map[string]string
	ok, err := c.Get("https://example.com/tree.json", &got)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v; want true, nil", ok, err)
	}
	if got["season"] != "2025" {
		t.Errorf("got %v, want stored value back", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	var v string
	ok, err := c.Get("missing", &v)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() = true for missing key")
	}
}

func TestCacheExpiration(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 10*time.Millisecond)
	if err := c.Set("key", "value"); err != nil {
		t.Fatal(err)
	}

	time.Sleep(20 * time.Millisecond)

	var v string
	ok, err := c.Get("key", &v)
	if ok || !errors.Is(err, ErrExpired) {
		t.Errorf("Get() after TTL = %v, %v; want false, ErrExpired", ok, err)
	}
}

func TestCacheKeyHashing(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	if c.keyPath("a") != c.keyPath("a") {
		t.Error("keyPath is not deterministic")
	}
	if c.keyPath("a") == c.keyPath("b") {
		t.Error("distinct keys collided")
	}
	if filepath.Dir(c.keyPath("https://x/y?z=1")) != c.Dir() {
		t.Error("keyPath escaped the cache directory")
	}
}

func TestNewCacheDefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	c, err := NewCache("", time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}
	if want := filepath.Join(home, ".cache", "coachtree"); c.Dir() != want {
		t.Errorf("Dir() = %s, want %s", c.Dir(), want)
	}
}

func TestCacheNamespaceIsolation(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	nfl := c.Namespace("nfl:")
	cfb := c.Namespace("cfb:")

	if err := nfl.Set("2025", "nfl-data"); err != nil {
		t.Fatal(err)
	}

	var v string
	if ok, _ := cfb.Get("2025", &v); ok {
		t.Error("value leaked across namespaces")
	}
	if ok, _ := nfl.Get("2025", &v); !ok || v != "nfl-data" {
		t.Errorf("nfl.Get() = %v, %q; want true, nfl-data", ok, v)
	}

	// Chained prefixes compose; the parent cannot see the child's keys.
	child := nfl.Namespace("weekly:")
	if err := child.Set("1", "x"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := nfl.Get("1", &v); ok {
		t.Error("chained namespace visible from parent")
	}
	if child.Dir() != c.Dir() || child.TTL() != c.TTL() {
		t.Error("namespace should share the parent's dir and TTL")
	}
}

func TestFetchDatasetCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"coaches":[{"id":"reid","name":"Andy Reid"}]}`))
	}))
	defer srv.Close()

	c, _ := NewCache(t.TempDir(), time.Hour)
	ctx := context.Background()

	first, err := FetchDatasetCached(ctx, srv.URL, c)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := FetchDatasetCached(ctx, srv.URL, c)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (second read served from cache)", hits)
	}
	if string(first) != string(second) {
		t.Error("cached body differs from fetched body")
	}
}

func TestFetchDatasetCachedNilCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	body, err := FetchDatasetCached(context.Background(), srv.URL, nil)
	if err != nil {
		t.Fatalf("nil-cache fetch: %v", err)
	}
	if len(body) == 0 {
		t.Error("empty body")
	}
}
