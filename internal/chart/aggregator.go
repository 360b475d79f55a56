package chart

import (
	"sort"
	"strconv"
	"time"

	"grafik/internal/core"
)

// TrendWindow is the number of most recent active days kept in the trend
// series.
const TrendWindow = 14

// BuildAllocation sums each active budget's history and pairs it with the
// budget's color (default palette when unset). Two synthetic entries are
// added: "Harian" for daily expenses and "Dana Umum" for removals from the
// general fund. Entries with a zero total are dropped and the result is
// sorted descending by value.
func BuildAllocation(s core.Snapshot) Series {
	out := Series{Kind: KindAllocation}

	for i, b := range s.Budgets {
		if b.Archived {
			continue
		}
		total := b.Total().Amount
		if total <= 0 {
			continue
		}
		color := b.Color
		if color == "" {
			color = paletteColor(i)
		}
		out.Points = append(out.Points, Point{Label: b.Name, Value: total, Color: color})
	}

	var daily int64
	for _, d := range s.Daily {
		daily += d.Amount.Amount
	}
	if daily > 0 {
		out.Points = append(out.Points, Point{Label: labelDaily, Value: daily, Color: paletteColor(len(s.Budgets))})
	}

	var fund int64
	for _, f := range s.Fund {
		if f.Type == core.FundRemove {
			fund += f.Amount.Amount
		}
	}
	if fund > 0 {
		out.Points = append(out.Points, Point{Label: labelGeneralFund, Value: fund, Color: paletteColor(len(s.Budgets) + 1)})
	}

	sort.SliceStable(out.Points, func(i, j int) bool {
		return out.Points[i].Value > out.Points[j].Value
	})
	return out
}

// BuildTrend merges every expense-type record (daily expenses, fund
// removals, active budgets' history) into per-day buckets, keeps the last
// TrendWindow days with activity and labels each point by day-of-month.
func BuildTrend(s core.Snapshot) Series {
	buckets := make(map[string]int64)

	add := func(at time.Time, amount int64) {
		buckets[dayKey(at)] += amount
	}
	for _, d := range s.Daily {
		add(d.Date, d.Amount.Amount)
	}
	for _, f := range s.Fund {
		if f.Type == core.FundRemove {
			add(f.Date, f.Amount.Amount)
		}
	}
	for _, b := range s.Budgets {
		if b.Archived {
			continue
		}
		for _, e := range b.History {
			add(e.Date, e.Amount.Amount)
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys) // dayKey sorts chronologically
	if len(keys) > TrendWindow {
		keys = keys[len(keys)-TrendWindow:]
	}

	out := Series{Kind: KindTrend}
	for _, k := range keys {
		out.Points = append(out.Points, Point{
			Label: dayOfMonth(k),
			Value: buckets[k],
			Color: colorExpense,
		})
	}
	return out
}

// BuildComparison produces the two-point income-vs-expense series. Income
// is the sum of fund additions; expense is the total of the allocation
// series so both bars agree with the treemap.
func BuildComparison(s core.Snapshot) Series {
	var income int64
	for _, f := range s.Fund {
		if f.Type == core.FundAdd {
			income += f.Amount.Amount
		}
	}
	expense := BuildAllocation(s).Total()

	if income == 0 && expense == 0 {
		return Series{Kind: KindComparison}
	}
	return Series{Kind: KindComparison, Points: []Point{
		{Label: labelIncome, Value: income, Color: colorIncome},
		{Label: labelExpense, Value: expense, Color: colorExpense},
	}}
}

// Build dispatches to the builder for the given kind.
func Build(k Kind, s core.Snapshot) Series {
	switch k {
	case KindTrend:
		return BuildTrend(s)
	case KindComparison:
		return BuildComparison(s)
	default:
		return BuildAllocation(s)
	}
}

// dayKey buckets a timestamp by local calendar date. The format sorts
// lexicographically in chronological order.
func dayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

func dayOfMonth(key string) string {
	d, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return strconv.Itoa(d.Day())
}
