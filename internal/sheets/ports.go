// Package sheets defines the outbound port for mirroring chart series to
// a spreadsheet.
package sheets

import (
	"context"
	"time"

	"grafik/internal/chart"
)

// SeriesExporter appends the points of a series to an external sheet, one
// row per point.
type SeriesExporter interface {
	ExportSeries(ctx context.Context, s chart.Series, exportedAt time.Time) error
}
