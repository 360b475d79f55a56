package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"grafik/internal/chart"
)

// handleViewState returns the current chart mode, insight text and
// analyzing flag.
func (s *Server) handleViewState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.view.State())
}

// handleSelectMode switches the chart view. The previous insight is
// cleared; no analysis is triggered.
func (s *Server) handleSelectMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	kind, err := chart.ParseKind(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown chart mode")
		return
	}
	if err := s.view.SelectMode(kind); err != nil {
		respondError(w, http.StatusBadRequest, "unknown chart mode")
		return
	}

	respondJSON(w, http.StatusOK, s.view.State())
}

// handleAnalyze requests an AI insight for the currently selected chart.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load snapshot", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	series := chart.Build(s.view.Mode(), snap)

	ctx, cancel := context.WithTimeout(r.Context(), s.insightTimeout)
	defer cancel()

	text, err := s.view.Analyze(ctx, series)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]string{"insight": text})
	case errors.Is(err, chart.ErrAnalysisDisabled):
		respondError(w, http.StatusForbidden, "analysis disabled: no API key configured")
	case errors.Is(err, chart.ErrAnalysisInFlight):
		respondError(w, http.StatusConflict, "analysis already in progress")
	default:
		slog.ErrorContext(ctx, "Analysis failed", "error", err, "kind", series.Kind)
		respondError(w, http.StatusBadGateway, "analysis failed")
	}
}
