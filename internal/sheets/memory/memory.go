// Package memory is an in-memory SeriesExporter for tests and local runs
// without Google credentials.
package memory

import (
	"context"
	"sync"
	"time"

	"grafik/internal/chart"
	ports "grafik/internal/sheets"
)

type Export struct {
	Kind       chart.Kind
	Points     []chart.Point
	ExportedAt time.Time
}

type Store struct {
	mu      sync.Mutex
	exports []Export
}

var _ ports.SeriesExporter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

func (s *Store) ExportSeries(ctx context.Context, series chart.Series, exportedAt time.Time) error {
	if series.Empty() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	points := make([]chart.Point, len(series.Points))
	copy(points, series.Points)
	s.exports = append(s.exports, Export{
		Kind:       series.Kind,
		Points:     points,
		ExportedAt: exportedAt,
	})
	return nil
}

// Exports returns a copy of everything exported so far.
func (s *Store) Exports() []Export {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Export, len(s.exports))
	for i, e := range s.exports {
		points := make([]chart.Point, len(e.Points))
		copy(points, e.Points)
		out[i] = Export{Kind: e.Kind, Points: points, ExportedAt: e.ExportedAt}
	}
	return out
}
