// Package render produces self-contained ECharts HTML for a chart series.
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"grafik/internal/chart"
	"grafik/internal/core"
)

const (
	chartWidth  = "900px"
	chartHeight = "520px"
)

// Render writes the series as an HTML chart: a treemap for allocation, a
// line for the trend and a bar chart for the comparison. Empty series are
// the caller's problem; render a placeholder instead of calling this.
func Render(w io.Writer, s chart.Series) error {
	switch s.Kind {
	case chart.KindAllocation:
		return renderTreemap(w, s)
	case chart.KindTrend:
		return renderLine(w, s)
	case chart.KindComparison:
		return renderBar(w, s)
	}
	return fmt.Errorf("render: %w", chart.ErrUnknownKind)
}

func renderTreemap(w io.Writer, s chart.Series) error {
	tm := charts.NewTreeMap()
	tm.SetGlobalOptions(globalOptions("Alokasi Dana")...)

	nodes := make([]opts.TreeMapNode, 0, len(s.Points))
	for _, p := range s.Points {
		nodes = append(nodes, opts.TreeMapNode{
			Name:  fmt.Sprintf("%s: %s", p.Label, core.AbbreviateRupiah(p.Value)),
			Value: int(p.Value),
		})
	}
	tm.AddSeries("alokasi", nodes)
	return tm.Render(w)
}

func renderLine(w io.Writer, s chart.Series) error {
	line := charts.NewLine()
	line.SetGlobalOptions(globalOptions("Tren Pengeluaran Harian")...)

	labels := make([]string, 0, len(s.Points))
	data := make([]opts.LineData, 0, len(s.Points))
	for _, p := range s.Points {
		labels = append(labels, p.Label)
		data = append(data, opts.LineData{Value: p.Value})
	}
	line.SetXAxis(labels).AddSeries("Pengeluaran", data)
	return line.Render(w)
}

func renderBar(w io.Writer, s chart.Series) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(globalOptions("Pemasukan vs Pengeluaran")...)

	labels := make([]string, 0, len(s.Points))
	data := make([]opts.BarData, 0, len(s.Points))
	for _, p := range s.Points {
		labels = append(labels, p.Label)
		data = append(data, opts.BarData{
			Value:     p.Value,
			ItemStyle: &opts.ItemStyle{Color: p.Color},
		})
	}
	bar.SetXAxis(labels).AddSeries("total", data)
	return bar.Render(w)
}

func globalOptions(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:           chartWidth,
			Height:          chartHeight,
			BackgroundColor: "#FFFFFF",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Top: "1%"}),
	}
}
