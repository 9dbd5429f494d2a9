package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/coachtree/coachtree/pkg/errors"
)

// FileStore is a file-based snapshot store for CLI usage.
// Each snapshot is one JSON file named <name>.json in the base directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based snapshot store.
// If baseDir is empty, defaults to ~/.config/coachtree/store/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "coachtree", "store")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Dir returns the store's base directory.
func (s *FileStore) Dir() string { return s.baseDir }

func (s *FileStore) recordPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

// Get retrieves a snapshot by name.
func (s *FileStore) Get(ctx context.Context, name string) (*Record, error) {
	if err := errors.ValidateSnapshotName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.recordPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &rec, nil
}

// Put stores a snapshot, overwriting any existing record with the same name.
func (s *FileStore) Put(ctx context.Context, rec *Record) error {
	if err := errors.ValidateSnapshotName(rec.Name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	if prev, err := s.read(rec.Name); err == nil {
		cp.CreatedAt = prev.CreatedAt
		cp.UpdatedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(&cp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(s.recordPath(rec.Name), data, 0600); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	return nil
}

// List returns metadata for all snapshots, sorted by name.
func (s *FileStore) List(ctx context.Context) ([]Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var metas []Metadata
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		rec, err := s.read(name)
		if err != nil {
			continue // skip unreadable entries
		}
		metas = append(metas, rec.Meta())
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas, nil
}

// Delete removes a snapshot by name.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateSnapshotName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.recordPath(name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// read loads a record without locking; callers hold the mutex.
func (s *FileStore) read(name string) (*Record, error) {
	data, err := os.ReadFile(s.recordPath(name))
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

var _ Store = (*FileStore)(nil)
