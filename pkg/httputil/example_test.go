package httputil_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/coachtree/coachtree/pkg/httputil"
)

func ExampleCache() {
	dir := filepath.Join(os.TempDir(), "coachtree-example")
	defer os.RemoveAll(dir)

	cache, err := httputil.NewCache(dir, 24*time.Hour)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	// Responses are keyed by URL, scoped per source.
	datasets := cache.Namespace("dataset:")
	if err := datasets.Set("https://example.com/nfl.json", "coaches..."); err != nil {
		fmt.Println("Error:", err)
		return
	}

	var body string
	if ok, err := datasets.Get("https://example.com/nfl.json", &body); ok && err == nil {
		fmt.Println("Cached:", body)
	}
	// Output:
	// Cached: coaches...
}

func ExampleCache_miss() {
	dir := filepath.Join(os.TempDir(), "coachtree-example-miss")
	defer os.RemoveAll(dir)

	cache, _ := httputil.NewCache(dir, time.Hour)

	var body string
	ok, err := cache.Get("https://example.com/unseen.json", &body)
	fmt.Println("Found:", ok)
	fmt.Println("Error:", err)
	// Output:
	// Found: false
	// Error: <nil>
}
