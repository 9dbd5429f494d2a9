// Package server exposes the layout pipeline and lineage queries over HTTP.
//
// The server wraps a pipeline.Runner and an optional snapshot store. It can
// hold a default dataset (loaded at startup) for the coach query endpoints,
// and individual requests can target a stored snapshot instead. All routes
// are JSON in, JSON out.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/coachtree/coachtree/pkg/graph"
	"github.com/coachtree/coachtree/pkg/lineage"
	"github.com/coachtree/coachtree/pkg/pipeline"
	"github.com/coachtree/coachtree/pkg/store"
)

// =============================================================================
// Configuration
// =============================================================================

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultDrainTimeout bounds graceful shutdown.
	DefaultDrainTimeout = 15 * time.Second

	readTimeout  = 30 * time.Second
	writeTimeout = 60 * time.Second
	idleTimeout  = 120 * time.Second

	// maxBodyBytes caps request bodies. Datasets are small; anything
	// larger is a mistake or abuse.
	maxBodyBytes = 8 << 20
)

// Config holds server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// DatasetPath optionally names a dataset file loaded at startup and
	// used as the default for the coach query endpoints.
	DatasetPath string

	// Dataset optionally supplies the default dataset inline. Takes
	// precedence over DatasetPath.
	Dataset *graph.Dataset

	// MaxDepth caps lineage depth for the default dataset. Zero uses
	// the pipeline default.
	MaxDepth int

	// DrainTimeout bounds how long shutdown waits for in-flight
	// requests. Zero uses DefaultDrainTimeout.
	DrainTimeout time.Duration
}

// =============================================================================
// Server
// =============================================================================

// Server is the HTTP API server.
type Server struct {
	cfg     Config
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	metrics *Metrics

	// Default dataset state, built at startup when configured.
	mu     sync.RWMutex
	tree   *pipeline.Tree
	pruned *lineage.Pruned
}

// New creates a server. The runner is required; the store may be nil, in
// which case the snapshot endpoints report 503. If the config names a
// default dataset it is ingested eagerly so startup fails fast on bad data.
func New(cfg Config, runner *pipeline.Runner, st store.Store, logger *log.Logger) (*Server, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = DefaultDrainTimeout
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = pipeline.DefaultMaxDepth
	}
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		cfg:     cfg,
		runner:  runner,
		store:   st,
		logger:  logger,
		metrics: NewMetrics(),
	}

	if cfg.Dataset != nil || cfg.DatasetPath != "" {
		if err := s.loadDefaultDataset(context.Background()); err != nil {
			return nil, fmt.Errorf("loading default dataset: %w", err)
		}
	}

	return s, nil
}

// Metrics returns the server's metrics registry.
func (s *Server) Metrics() *Metrics { return s.metrics }

// loadDefaultDataset ingests the configured dataset and rebuilds the
// query index.
func (s *Server) loadDefaultDataset(ctx context.Context) error {
	opts := pipeline.Options{
		DatasetPath: s.cfg.DatasetPath,
		Dataset:     s.cfg.Dataset,
		MaxDepth:    s.cfg.MaxDepth,
		Logger:      s.logger,
	}
	tree, err := s.runner.Ingest(ctx, opts)
	if err != nil {
		return err
	}
	pruned, err := tree.Pruned()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.tree = tree
	s.pruned = pruned
	s.mu.Unlock()

	s.logger.Info("default dataset loaded",
		"coaches", len(tree.Dataset.Coaches),
		"kept", tree.KeptCount(),
		"deepest", tree.Deepest)
	return nil
}

// defaultPruned returns the query index for the default dataset, or nil
// when no default dataset is configured.
func (s *Server) defaultPruned() *lineage.Pruned {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pruned
}

// Router builds the chi router with all middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Instrument(s.metrics))
	r.Use(RequestLogger(s.logger))
	r.Use(Recoverer(s.logger))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)

		r.Route("/coaches/{id}", func(r chi.Router) {
			r.Get("/chain", s.handleChain)
			r.Get("/reach", s.handleReach)
			r.Get("/connections", s.handleConnections)
		})

		r.Route("/snapshots", func(r chi.Router) {
			r.Get("/", s.handleListSnapshots)
			r.Get("/{name}", s.handleGetSnapshot)
			r.Put("/{name}", s.handlePutSnapshot)
			r.Delete("/{name}", s.handleDeleteSnapshot)
		})
	})

	return r
}

// Run starts the server and blocks until the context is canceled or the
// listener fails. Cancellation triggers a graceful shutdown bounded by
// the drain timeout.
func (s *Server) Run(ctx context.Context) error {
	s.metrics.InstallHooks()

	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "drain_timeout", s.cfg.DrainTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.DrainTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
