package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/lineage"
)

// Tree is the serializable output of the ingest stage: the validated
// dataset plus the pruning result. The adjacency arenas are cheap to
// rebuild deterministically from the dataset, so only the dataset and
// the derived depth map are persisted.
type Tree struct {
	Dataset  graph.Dataset  `json:"dataset" bson:"dataset"`
	MaxDepth int            `json:"max_depth" bson:"max_depth"`
	Deepest  int            `json:"deepest" bson:"deepest"`
	Depths   map[string]int `json:"depths" bson:"depths"`
}

// KeptCount returns the number of coaches that survived pruning.
func (t *Tree) KeptCount() int { return len(t.Depths) }

// Pruned rebuilds the in-memory lineage snapshot from the tree.
// The rebuild is deterministic, so a cached tree and a fresh ingest
// produce identical snapshots.
func (t *Tree) Pruned() (*lineage.Pruned, error) {
	return BuildPruned(&t.Dataset, t.MaxDepth)
}

// Ingest runs the ingest stage: load and validate the dataset, build
// the mentorship forest, assign generation depths, and prune to the
// root-reachable kept set.
func Ingest(ctx context.Context, opts Options) (*Tree, error) {
	if err := opts.ValidateForIngest(); err != nil {
		return nil, err
	}

	d, err := LoadDataset(opts)
	if err != nil {
		return nil, err
	}

	p, err := BuildPruned(&d, opts.MaxDepth)
	if err != nil {
		return nil, err
	}

	depths := make(map[string]int, len(p.Coaches()))
	for _, c := range p.Coaches() {
		depth, _ := p.Depth(c.ID)
		depths[c.ID] = depth
	}

	return &Tree{
		Dataset:  d,
		MaxDepth: opts.MaxDepth,
		Deepest:  p.Deepest(),
		Depths:   depths,
	}, nil
}

// BuildPruned builds the lineage snapshot for a dataset: forest
// construction, depth assignment, and pruning in one call.
// Returns lineage.ErrCycle (wrapped) for cyclic mentorship data.
func BuildPruned(d *graph.Dataset, maxDepth int) (*lineage.Pruned, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}

	f := lineage.Build(d)
	a, err := lineage.Assign(f, maxDepth)
	if err != nil {
		return nil, err
	}
	return lineage.Prune(f, a), nil
}

// LoadDataset resolves the dataset from options: the inline dataset
// when present, otherwise the dataset file at DatasetPath.
func LoadDataset(opts Options) (graph.Dataset, error) {
	if opts.Dataset != nil {
		return *opts.Dataset, nil
	}
	return graph.ReadDatasetFile(opts.DatasetPath)
}

// MarshalTree serializes a Tree for caching.
func MarshalTree(t *Tree) ([]byte, error) {
	return json.Marshal(t)
}

// UnmarshalTree deserializes a cached Tree.
func UnmarshalTree(data []byte) (*Tree, error) {
	var t Tree
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshal tree: %w", err)
	}
	return &t, nil
}
