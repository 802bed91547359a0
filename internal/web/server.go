// Package web is the HTTP presentation layer: a thin JSON surface over the
// report engine. Each request fetches a fresh snapshot and recomputes the
// requested report; there is no incremental update path, so "live" views are
// achieved by the portal polling these endpoints.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"ria-analytics/internal/config"
	"ria-analytics/internal/snapshot"
)

// Server serves the eight reports over HTTP.
type Server struct {
	cfg    *config.AppConfig
	loader *snapshot.Loader
	cache  *snapshot.Cache
}

// NewServer creates a report server. cache may be nil, in which case the
// ?cached=1 replay path is unavailable.
func NewServer(cfg *config.AppConfig, loader *snapshot.Loader, cache *snapshot.Cache) *Server {
	return &Server{cfg: cfg, loader: loader, cache: cache}
}

// Router builds the chi route tree.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/live-status", s.handleLiveStatus)
		r.Get("/overdue", s.handleOverdue)
		r.Get("/stage-durations", s.handleStageDurations)
		r.Get("/stuck", s.handleStuck)
		r.Get("/workload", s.handleWorkload)
		r.Get("/bottlenecks", s.handleBottlenecks)
		r.Get("/turnaround", s.handleTurnaround)
		r.Get("/timeline/{submissionID}", s.handleTimeline)
	})

	return r
}

// ListenAndServe runs the HTTP server until the listener fails or the
// context is canceled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.ListenAddr).Msg("Report API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// currentSnapshot resolves the snapshot for one request: a fresh fetch by
// default, or the latest cached snapshot when ?cached=1 is set.
func (s *Server) currentSnapshot(r *http.Request) (*snapshot.Snapshot, error) {
	if r.URL.Query().Get("cached") == "1" && s.cache != nil {
		snap, ok, err := s.cache.LoadLatest()
		if err != nil {
			return nil, err
		}
		if ok {
			return snap, nil
		}
		// Fall through to a live fetch when the cache is empty.
	}
	return s.loader.Fetch(r.Context())
}
