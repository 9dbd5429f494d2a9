package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore is an in-memory snapshot store for tests and development.
// Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Get retrieves a snapshot by name.
func (s *MemoryStore) Get(ctx context.Context, name string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[name]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// Put stores a snapshot, overwriting any existing record with the same name.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rec
	if prev, ok := s.records[rec.Name]; ok {
		cp.CreatedAt = prev.CreatedAt
		cp.UpdatedAt = time.Now().UTC()
	}
	s.records[rec.Name] = &cp
	return nil
}

// List returns metadata for all snapshots, sorted by name.
func (s *MemoryStore) List(ctx context.Context) ([]Metadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metas := make([]Metadata, 0, len(s.records))
	for _, rec := range s.records {
		metas = append(metas, rec.Meta())
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas, nil
}

// Delete removes a snapshot by name.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[name]; !ok {
		return ErrNotFound
	}
	delete(s.records, name)
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
