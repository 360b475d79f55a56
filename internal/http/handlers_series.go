package http

import (
	"log/slog"
	"net/http"

	"grafik/internal/chart"
	"grafik/internal/core"
	"grafik/internal/render"
)

// seriesView is the JSON shape of one chart series. Empty series carry a
// placeholder message so clients render an empty state, never a broken
// chart.
type seriesView struct {
	Kind           chart.Kind  `json:"kind"`
	Points         []pointView `json:"points"`
	Total          int64       `json:"total"`
	TotalFormatted string      `json:"total_formatted"`
	Empty          bool        `json:"empty"`
	Message        string      `json:"message,omitempty"`
}

func newSeriesView(s chart.Series) seriesView {
	v := seriesView{
		Kind:           s.Kind,
		Points:         make([]pointView, 0, len(s.Points)),
		Total:          s.Total(),
		TotalFormatted: core.FormatRupiah(s.Total()),
		Empty:          s.Empty(),
	}
	if s.Empty() {
		v.Message = chart.EmptyMessage(s.Kind)
	}
	for _, p := range s.Points {
		v.Points = append(v.Points, newPointView(p.Label, p.Value, p.Color))
	}
	return v
}

// handleSeries returns the chart-ready series for a kind.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	kind, err := chart.ParseKind(r.PathValue("kind"))
	if err != nil {
		respondError(w, http.StatusNotFound, "unknown chart kind")
		return
	}

	snap, err := s.snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load snapshot", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	respondJSON(w, http.StatusOK, newSeriesView(chart.Build(kind, snap)))
}

// handleChart renders the currently selected chart as ECharts HTML, or an
// empty-state placeholder when there is no data.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load snapshot", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	kind := s.view.Mode()
	series := chart.Build(kind, snap)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if series.Empty() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="empty-state">` + chart.EmptyMessage(kind) + `</div>`))
		return
	}

	if err := render.Render(w, series); err != nil {
		slog.ErrorContext(r.Context(), "Chart render failed", "error", err, "kind", kind)
	}
}
