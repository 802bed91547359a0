package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"ria-analytics/internal/reports"
	"ria-analytics/internal/visuals"
)

// reportEnvelope wraps every report payload with the snapshot's capture
// time so consumers can tell how fresh the numbers are.
type reportEnvelope struct {
	TakenAt time.Time   `json:"takenAt"`
	Report  interface{} `json:"report"`
	Chart   string      `json:"chart,omitempty"`
}

type errorEnvelope struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeFetchError maps a snapshot failure to 502: the fault is upstream in
// the record store, and its message travels to the caller verbatim.
func writeFetchError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Snapshot fetch failed")
	writeJSON(w, http.StatusBadGateway, errorEnvelope{Message: err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLiveStatus(w http.ResponseWriter, r *http.Request) {
	snap, err := s.currentSnapshot(r)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	engine := reports.New(snap)
	writeJSON(w, http.StatusOK, reportEnvelope{TakenAt: engine.Now(), Report: engine.LiveStatus()})
}

func (s *Server) handleOverdue(w http.ResponseWriter, r *http.Request) {
	snap, err := s.currentSnapshot(r)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	engine := reports.New(snap)
	writeJSON(w, http.StatusOK, reportEnvelope{TakenAt: engine.Now(), Report: engine.Overdue()})
}

func (s *Server) handleStageDurations(w http.ResponseWriter, r *http.Request) {
	snap, err := s.currentSnapshot(r)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	engine := reports.New(snap)
	writeJSON(w, http.StatusOK, reportEnvelope{TakenAt: engine.Now(), Report: engine.StageDurations()})
}

func (s *Server) handleStuck(w http.ResponseWriter, r *http.Request) {
	snap, err := s.currentSnapshot(r)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	engine := reports.New(snap)
	writeJSON(w, http.StatusOK, reportEnvelope{TakenAt: engine.Now(), Report: engine.StuckSubmissions()})
}

func (s *Server) handleWorkload(w http.ResponseWriter, r *http.Request) {
	snap, err := s.currentSnapshot(r)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	engine := reports.New(snap)
	writeJSON(w, http.StatusOK, reportEnvelope{TakenAt: engine.Now(), Report: engine.OfficerWorkloads()})
}

func (s *Server) handleBottlenecks(w http.ResponseWriter, r *http.Request) {
	snap, err := s.currentSnapshot(r)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	engine := reports.New(snap)
	envelope := reportEnvelope{TakenAt: engine.Now()}
	bottlenecks := engine.Bottlenecks()
	envelope.Report = bottlenecks
	if s.cfg.EnableMermaidCharts {
		envelope.Chart = visuals.GenerateBottleneckChart(bottlenecks)
	}
	writeJSON(w, http.StatusOK, envelope)
}

func (s *Server) handleTurnaround(w http.ResponseWriter, r *http.Request) {
	snap, err := s.currentSnapshot(r)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	engine := reports.New(snap)
	writeJSON(w, http.StatusOK, reportEnvelope{TakenAt: engine.Now(), Report: engine.Turnaround()})
}

func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	submissionID := chi.URLParam(r, "submissionID")

	snap, err := s.currentSnapshot(r)
	if err != nil {
		writeFetchError(w, err)
		return
	}
	engine := reports.New(snap)

	timeline, err := engine.Timeline(submissionID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, reports.ErrSubmissionNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, errorEnvelope{Message: err.Error()})
		return
	}

	envelope := reportEnvelope{TakenAt: engine.Now(), Report: timeline}
	if s.cfg.EnableMermaidCharts {
		if sub, ok := snap.Submission(submissionID); ok {
			envelope.Chart = visuals.GenerateTimelineGantt(sub.TrackingNumber, timeline)
		}
	}
	writeJSON(w, http.StatusOK, envelope)
}
