// Package chart turns raw finance records into chart-ready series and
// holds the view state of the chart screen.
package chart

import "errors"

// Kind selects one of the three chart views.
type Kind string

const (
	KindAllocation Kind = "allocation"
	KindTrend      Kind = "trend"
	KindComparison Kind = "comparison"
)

var ErrUnknownKind = errors.New("unknown chart kind")

// ParseKind validates a chart kind coming from the outside.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindAllocation, KindTrend, KindComparison:
		return Kind(s), nil
	}
	return "", ErrUnknownKind
}

// Point is a single chart datum, resolved at the aggregation boundary so
// renderers never inspect raw records.
type Point struct {
	Label string
	Value int64
	Color string
}

// Series is a kind-tagged list of points. Empty series mean "no data":
// callers render a placeholder instead of an empty chart.
type Series struct {
	Kind   Kind
	Points []Point
}

func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Total sums the series values.
func (s Series) Total() int64 {
	var sum int64
	for _, p := range s.Points {
		sum += p.Value
	}
	return sum
}

// Fixed labels and colors for synthetic entries.
const (
	labelDaily       = "Harian"
	labelGeneralFund = "Dana Umum"
	labelIncome      = "Pemasukan"
	labelExpense     = "Pengeluaran"

	colorIncome  = "#10B981"
	colorExpense = "#EF4444"
)

// defaultPalette backs budgets without an explicit color.
var defaultPalette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

func paletteColor(i int) string {
	return defaultPalette[i%len(defaultPalette)]
}

// EmptyMessage is the placeholder text shown when a series has no points.
func EmptyMessage(k Kind) string {
	switch k {
	case KindAllocation:
		return "Belum ada data alokasi dana"
	case KindTrend:
		return "Belum ada data pengeluaran"
	case KindComparison:
		return "Belum ada data pemasukan dan pengeluaran"
	}
	return "Belum ada data"
}
