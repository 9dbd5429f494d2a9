package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when an entry exists on disk but
// has outlived its TTL. The stale data is left in place; callers should
// fetch fresh data and write it back with [Cache.Set].
var ErrExpired = errors.New("cache entry expired")

// Cache is a file-backed store for JSON-marshalable values, used to keep
// downloaded dataset responses between runs. Filenames are the SHA-256 of
// the key, so arbitrary keys (full URLs included) are safe. Entries expire
// by file modification time; a TTL of zero never expires.
//
// A single Cache value is not goroutine-safe, but separate instances (and
// separate processes) can share one directory.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache rooted at dir with the given TTL. An empty dir
// falls back to ~/.cache/coachtree/. The directory is created if missing.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "coachtree")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the entry time-to-live. Zero means entries never expire.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get looks up key and unmarshals the stored JSON into v. It reports
// (true, nil) on a fresh hit, (false, nil) on a miss, and
// (false, ErrExpired) when the entry exists but is past its TTL.
// Reads never touch modification times.
func (c *Cache) Get(key string, v any) (bool, error) {
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set marshals v to JSON and stores it under key, replacing any existing
// entry and restarting its TTL.
func (c *Cache) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a view of the cache whose keys all carry the given
// prefix, sharing the parent's directory and TTL. Calls chain:
// cache.Namespace("dataset:").Namespace("nfl:") prefixes "dataset:nfl:".
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{
		dir:    c.dir,
		ttl:    c.ttl,
		prefix: c.prefix + prefix,
	}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
