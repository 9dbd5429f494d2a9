package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/coachtree/coachtree/pkg/buildinfo"
	"github.com/coachtree/coachtree/pkg/cache"
	cterrors "github.com/coachtree/coachtree/pkg/errors"
	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/lineage"
	"github.com/coachtree/coachtree/pkg/pipeline"
	"github.com/coachtree/coachtree/pkg/store"
)

// =============================================================================
// Response Helpers
// =============================================================================

// errorResponse is the JSON shape for all error responses.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// statusFor maps structured error codes to HTTP statuses.
func statusFor(err error) int {
	switch cterrors.GetCode(err) {
	case cterrors.ErrCodeInvalidInput, cterrors.ErrCodeInvalidDataset,
		cterrors.ErrCodeInvalidCoach, cterrors.ErrCodeInvalidFormat,
		cterrors.ErrCodeInvalidColor, cterrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case cterrors.ErrCodeCycleDetected:
		return http.StatusUnprocessableEntity
	case cterrors.ErrCodeNotFound, cterrors.ErrCodeCoachNotFound,
		cterrors.ErrCodeFileNotFound, cterrors.ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	}
	if errors.Is(err, lineage.ErrCycle) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Layout
// =============================================================================

// layoutRequest is the POST /api/layout body: pipeline options plus an
// optional stored snapshot name standing in for the inline dataset.
type layoutRequest struct {
	pipeline.Options
	Snapshot string `json:"snapshot,omitempty"`
}

// layoutResponse carries the computed layout plus run metadata. Artifact
// bytes are base64 in JSON per encoding/json []byte rules.
type layoutResponse struct {
	Layout    graph.Layout       `json:"layout"`
	Stats     pipeline.Stats     `json:"stats"`
	CacheInfo pipeline.CacheInfo `json:"cache_info"`
	Artifacts map[string][]byte  `json:"artifacts,omitempty"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	opts := req.Options
	opts.Logger = s.logger
	// Server-side paths would let callers read arbitrary files.
	opts.DatasetPath = ""

	runner := s.runner
	if req.Snapshot != "" {
		d, err := s.datasetFromStore(r, req.Snapshot)
		if err != nil {
			writeError(w, statusFor(err), "loading snapshot", err)
			return
		}
		opts.Dataset = d
		// Snapshot runs get their own cache namespace so entries can be
		// attributed and evicted per snapshot.
		runner = pipeline.NewRunner(s.runner.Cache,
			cache.NewScopedKeyer(s.runner.Keyer, "snapshot:"+req.Snapshot+":"), s.logger)
	}
	if opts.Dataset == nil {
		writeError(w, http.StatusBadRequest, "dataset or snapshot is required", nil)
		return
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatJSON}
	}

	result, err := runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, statusFor(err), "pipeline failed", err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		Layout:    result.Layout,
		Stats:     result.Stats,
		CacheInfo: result.CacheInfo,
		Artifacts: result.Artifacts,
	})
}

// =============================================================================
// Coach Queries
// =============================================================================

type chainResponse struct {
	Coach string             `json:"coach"`
	Chain []string           `json:"chain"`
	Edges []graph.Connection `json:"edges,omitempty"`
}

type reachResponse struct {
	Coach string   `json:"coach"`
	Reach []string `json:"reach"`
}

type connectionsResponse struct {
	Coach       string                 `json:"coach"`
	Connections []graph.ConnectionInfo `json:"connections"`
}

// queryPruned resolves the lineage index a coach query runs against:
// the ?snapshot= query parameter names a stored dataset, otherwise the
// server's default dataset serves. ?depth= overrides the depth cap for
// snapshot-backed queries.
func (s *Server) queryPruned(r *http.Request) (*lineage.Pruned, error) {
	name := r.URL.Query().Get("snapshot")
	if name == "" {
		p := s.defaultPruned()
		if p == nil {
			return nil, cterrors.New(cterrors.ErrCodeInvalidInput, "no default dataset configured; pass ?snapshot=")
		}
		return p, nil
	}

	d, err := s.datasetFromStore(r, name)
	if err != nil {
		return nil, err
	}
	depth := pipeline.DefaultMaxDepth
	if raw := r.URL.Query().Get("depth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, cterrors.New(cterrors.ErrCodeInvalidInput, "invalid depth: %q", raw)
		}
		depth = n
	}
	return pipeline.BuildPruned(d, depth)
}

// datasetFromStore loads and parses a stored dataset snapshot.
func (s *Server) datasetFromStore(r *http.Request, name string) (*graph.Dataset, error) {
	if s.store == nil {
		return nil, cterrors.New(cterrors.ErrCodeStore, "no snapshot store configured")
	}
	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, cterrors.Wrap(cterrors.ErrCodeSnapshotNotFound, err, "snapshot %q", name)
		}
		return nil, cterrors.Wrap(cterrors.ErrCodeStore, err, "snapshot %q", name)
	}
	if rec.Kind != store.KindDataset {
		return nil, cterrors.New(cterrors.ErrCodeInvalidInput, "snapshot %q holds a %s, not a dataset", name, rec.Kind)
	}
	d, err := graph.UnmarshalDataset(rec.Data)
	if err != nil {
		return nil, cterrors.Wrap(cterrors.ErrCodeInvalidDataset, err, "snapshot %q", name)
	}
	return &d, nil
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.queryPruned(r)
	if err != nil {
		writeError(w, statusFor(err), "resolving dataset", err)
		return
	}

	chain := p.DeepestAncestorChain(id)
	if chain == nil {
		writeError(w, http.StatusNotFound, "coach not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, chainResponse{
		Coach: id,
		Chain: chain,
		Edges: p.PathEdges(chain),
	})
}

func (s *Server) handleReach(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.queryPruned(r)
	if err != nil {
		writeError(w, statusFor(err), "resolving dataset", err)
		return
	}

	reach := p.FullReachableSet(id)
	if reach == nil {
		writeError(w, http.StatusNotFound, "coach not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, reachResponse{Coach: id, Reach: reach})
}

func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := s.queryPruned(r)
	if err != nil {
		writeError(w, statusFor(err), "resolving dataset", err)
		return
	}

	if !p.Contains(id) {
		writeError(w, http.StatusNotFound, "coach not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, connectionsResponse{
		Coach:       id,
		Connections: p.ConnectionsFor(id),
	})
}

// =============================================================================
// Snapshots
// =============================================================================

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot store configured", nil)
		return false
	}
	return true
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	metas, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing snapshots", err)
		return
	}
	if metas == nil {
		metas = []store.Metadata{}
	}
	writeJSON(w, http.StatusOK, metas)
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	name := chi.URLParam(r, "name")
	rec, err := s.store.Get(r.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "snapshot not found", nil)
			return
		}
		writeError(w, statusFor(err), "loading snapshot", err)
		return
	}

	// ?raw=1 serves the stored payload directly instead of the record.
	if r.URL.Query().Get("raw") != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(rec.Data)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePutSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	name := chi.URLParam(r, "name")

	kind := store.Kind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = store.KindDataset
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading body", err)
		return
	}

	// Validate the payload against its declared kind before storing.
	switch kind {
	case store.KindDataset:
		d, err := graph.UnmarshalDataset(data)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid dataset", err)
			return
		}
		if err := d.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid dataset", err)
			return
		}
	case store.KindLayout:
		if _, err := graph.UnmarshalLayout(data); err != nil {
			writeError(w, http.StatusBadRequest, "invalid layout", err)
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "invalid kind", nil)
		return
	}

	rec := store.NewRecord(name, kind, data)
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, statusFor(err), "storing snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, rec.Meta())
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	name := chi.URLParam(r, "name")
	if err := s.store.Delete(r.Context(), name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "snapshot not found", nil)
			return
		}
		writeError(w, statusFor(err), "deleting snapshot", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
