// Package store persists named dataset and layout snapshots.
//
// A snapshot is an opaque JSON payload saved under a user-chosen name, so a
// dataset (or a computed layout) can be referenced later by name instead of
// by file path or URL. The CLI `snapshot` command group and the server's
// /api/snapshots routes are both built on this package.
//
// Three backends implement [Store]:
//   - [MemoryStore]: in-memory, for tests and development
//   - [FileStore]: JSON files under ~/.config/coachtree/store/
//   - [MongoStore]: MongoDB, for multi-instance server deployments
package store

import (
	"context"
	"errors"
	"time"

	"github.com/coachtree/coachtree/pkg/cache"
)

// Kind classifies what a snapshot holds.
type Kind string

const (
	// KindDataset marks raw dataset snapshots (coaches + connections).
	KindDataset Kind = "dataset"

	// KindLayout marks computed layout snapshots.
	KindLayout Kind = "layout"
)

// ErrNotFound is returned when a named snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// Record is a stored snapshot: metadata plus the raw JSON payload.
type Record struct {
	Name      string    `json:"name" bson:"name"`
	Kind      Kind      `json:"kind" bson:"kind"`
	Hash      string    `json:"hash" bson:"hash"` // SHA-256 of Data
	Data      []byte    `json:"data" bson:"data"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Metadata describes a stored snapshot without its payload.
// List returns these so callers can show an index cheaply.
type Metadata struct {
	Name      string    `json:"name" bson:"name"`
	Kind      Kind      `json:"kind" bson:"kind"`
	Hash      string    `json:"hash" bson:"hash"`
	Size      int       `json:"size" bson:"size"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewRecord builds a Record for data, computing its content hash and
// stamping both timestamps with the current time.
func NewRecord(name string, kind Kind, data []byte) *Record {
	now := time.Now().UTC()
	return &Record{
		Name:      name,
		Kind:      kind,
		Hash:      cache.Hash(data),
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Meta returns the record's metadata view.
func (r *Record) Meta() Metadata {
	return Metadata{
		Name:      r.Name,
		Kind:      r.Kind,
		Hash:      r.Hash,
		Size:      len(r.Data),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Store persists named snapshots.
//
// Put overwrites an existing record with the same name, preserving the
// original CreatedAt and refreshing UpdatedAt. Get and Delete return
// [ErrNotFound] for unknown names. List returns metadata sorted by name.
type Store interface {
	Get(ctx context.Context, name string) (*Record, error)
	Put(ctx context.Context, rec *Record) error
	List(ctx context.Context) ([]Metadata, error)
	Delete(ctx context.Context, name string) error
	Close() error
}
