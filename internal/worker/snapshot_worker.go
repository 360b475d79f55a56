// Package worker renders queued chart snapshots and mirrors them to the
// configured exporters.
package worker

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"grafik/internal/amqp"
	"grafik/internal/chart"
	"grafik/internal/core"
	"grafik/internal/render"
	"grafik/internal/sheets"
)

// Store loads the records a snapshot is built from.
type Store interface {
	Snapshot(ctx context.Context) (core.Snapshot, error)
}

// SnapshotWorker consumes snapshot requests, renders the chart HTML to
// the output directory and optionally mirrors the series to a sheet.
type SnapshotWorker struct {
	store    Store
	exporter sheets.SeriesExporter // may be nil
	outDir   string
}

func NewSnapshotWorker(store Store, exporter sheets.SeriesExporter, outDir string) *SnapshotWorker {
	return &SnapshotWorker{
		store:    store,
		exporter: exporter,
		outDir:   outDir,
	}
}

// HandleSnapshotRequest processes a single snapshot request from AMQP.
// Rendering and sheet export run concurrently; either failure nacks the
// message for redelivery.
func (w *SnapshotWorker) HandleSnapshotRequest(ctx context.Context, msg *amqp.SnapshotRequestMessage) error {
	kind, err := chart.ParseKind(msg.Kind)
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", msg.ID, err)
	}

	snap, err := w.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	series := chart.Build(kind, snap)
	if series.Empty() {
		slog.InfoContext(ctx, "Skipping empty snapshot", "id", msg.ID, "kind", kind)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.writeChartFile(msg.ID, series)
	})
	g.Go(func() error {
		if w.exporter == nil {
			return nil
		}
		if err := w.exporter.ExportSeries(gctx, series, time.Now()); err != nil {
			return fmt.Errorf("export series: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Snapshot processed",
		"id", msg.ID,
		"kind", kind,
		"points", len(series.Points))
	return nil
}

func (w *SnapshotWorker) writeChartFile(id string, series chart.Series) error {
	if err := os.MkdirAll(w.outDir, 0755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, series); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	name := fmt.Sprintf("%s-%s.html", series.Kind, id)
	path := filepath.Join(w.outDir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write chart file: %w", err)
	}
	return nil
}
