package chart

import (
	"testing"
	"time"

	"grafik/internal/core"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.Local)
}

func budget(name string, archived bool, amounts ...int64) core.Budget {
	b := core.Budget{Name: name, Archived: archived}
	for i, a := range amounts {
		b.History = append(b.History, core.BudgetEntry{
			Amount: core.Money{Amount: a},
			Date:   day(2025, 1, i+1),
		})
	}
	return b
}

func TestBuildAllocationSumsActiveBudgets(t *testing.T) {
	s := core.Snapshot{
		Budgets: []core.Budget{
			budget("Makan", false, 10000, 5000),
			budget("Arsip", true, 99999), // archived, excluded
			budget("Kosong", false),      // zero total, excluded
		},
		Daily: []core.DailyExpense{
			{Amount: core.Money{Amount: 2000}, Date: day(2025, 1, 3)},
		},
	}

	got := BuildAllocation(s)
	if len(got.Points) != 2 {
		t.Fatalf("expected 2 points, got %d: %+v", len(got.Points), got.Points)
	}
	if got.Points[0].Label != "Makan" || got.Points[0].Value != 15000 {
		t.Fatalf("expected [Makan 15000] first, got %+v", got.Points[0])
	}
	if got.Points[1].Label != "Harian" || got.Points[1].Value != 2000 {
		t.Fatalf("expected [Harian 2000] second, got %+v", got.Points[1])
	}
}

func TestBuildAllocationSortedDescending(t *testing.T) {
	perms := [][]core.Budget{
		{budget("A", false, 100), budget("B", false, 300), budget("C", false, 200)},
		{budget("C", false, 200), budget("A", false, 100), budget("B", false, 300)},
		{budget("B", false, 300), budget("C", false, 200), budget("A", false, 100)},
	}
	for i, bs := range perms {
		got := BuildAllocation(core.Snapshot{Budgets: bs})
		for j := 1; j < len(got.Points); j++ {
			if got.Points[j-1].Value < got.Points[j].Value {
				t.Fatalf("perm %d not sorted descending: %+v", i, got.Points)
			}
		}
		if got.Points[0].Label != "B" {
			t.Fatalf("perm %d expected B first, got %+v", i, got.Points[0])
		}
	}
}

func TestBuildAllocationGeneralFund(t *testing.T) {
	s := core.Snapshot{
		Fund: []core.FundEntry{
			{Amount: core.Money{Amount: 20000}, Date: day(2025, 1, 1), Type: core.FundRemove},
			{Amount: core.Money{Amount: 50000}, Date: day(2025, 1, 1), Type: core.FundAdd}, // income, excluded
		},
	}
	got := BuildAllocation(s)
	if len(got.Points) != 1 {
		t.Fatalf("expected 1 point, got %+v", got.Points)
	}
	if got.Points[0].Label != "Dana Umum" || got.Points[0].Value != 20000 {
		t.Fatalf("expected [Dana Umum 20000], got %+v", got.Points[0])
	}
}

func TestBuildAllocationBudgetColorFallback(t *testing.T) {
	s := core.Snapshot{Budgets: []core.Budget{
		{Name: "Custom", Color: "#ABCDEF", History: []core.BudgetEntry{{Amount: core.Money{Amount: 100}, Date: day(2025, 1, 1)}}},
		budget("Plain", false, 50),
	}}
	got := BuildAllocation(s)
	if got.Points[0].Color != "#ABCDEF" {
		t.Fatalf("expected budget color preserved, got %q", got.Points[0].Color)
	}
	if got.Points[1].Color == "" {
		t.Fatalf("expected palette fallback color")
	}
}

func TestBuildTrendBucketsByDay(t *testing.T) {
	s := core.Snapshot{
		Daily: []core.DailyExpense{
			{Amount: core.Money{Amount: 1000}, Date: day(2025, 2, 1)},
			{Amount: core.Money{Amount: 500}, Date: day(2025, 2, 1)}, // same day, summed
		},
		Fund: []core.FundEntry{
			{Amount: core.Money{Amount: 300}, Date: day(2025, 2, 3), Type: core.FundRemove},
		},
		Budgets: []core.Budget{
			{Name: "B", History: []core.BudgetEntry{{Amount: core.Money{Amount: 200}, Date: day(2025, 2, 2)}}},
		},
	}
	got := BuildTrend(s)
	if len(got.Points) != 3 {
		t.Fatalf("expected 3 buckets, got %+v", got.Points)
	}
	want := []Point{
		{Label: "1", Value: 1500, Color: "#EF4444"},
		{Label: "2", Value: 200, Color: "#EF4444"},
		{Label: "3", Value: 300, Color: "#EF4444"},
	}
	for i, p := range want {
		if got.Points[i] != p {
			t.Fatalf("point %d = %+v, want %+v", i, got.Points[i], p)
		}
	}
}

func TestBuildTrendWindowLimit(t *testing.T) {
	var s core.Snapshot
	for i := 0; i < 30; i++ {
		s.Daily = append(s.Daily, core.DailyExpense{
			Amount: core.Money{Amount: int64(i + 1)},
			Date:   day(2025, 3, 1).AddDate(0, 0, i),
		})
	}
	got := BuildTrend(s)
	if len(got.Points) != TrendWindow {
		t.Fatalf("expected %d points, got %d", TrendWindow, len(got.Points))
	}
	// most recent days survive; last point is the last day added
	if got.Points[len(got.Points)-1].Value != 30 {
		t.Fatalf("expected last point from most recent day, got %+v", got.Points[len(got.Points)-1])
	}
	for i := 1; i < len(got.Points); i++ {
		if got.Points[i].Value != got.Points[i-1].Value+1 {
			t.Fatalf("points not chronological: %+v", got.Points)
		}
	}
}

func TestBuildTrendSkipsArchivedBudgets(t *testing.T) {
	s := core.Snapshot{Budgets: []core.Budget{budget("Arsip", true, 500)}}
	if got := BuildTrend(s); !got.Empty() {
		t.Fatalf("archived budget history must not feed the trend, got %+v", got.Points)
	}
}

func TestBuildComparison(t *testing.T) {
	s := core.Snapshot{
		Fund: []core.FundEntry{
			{Amount: core.Money{Amount: 50000}, Date: day(2025, 1, 1), Type: core.FundAdd},
			{Amount: core.Money{Amount: 20000}, Date: day(2025, 1, 2), Type: core.FundRemove},
		},
	}
	got := BuildComparison(s)
	if len(got.Points) != 2 {
		t.Fatalf("expected 2 points, got %+v", got.Points)
	}
	if got.Points[0].Label != "Pemasukan" || got.Points[0].Value != 50000 {
		t.Fatalf("unexpected income point %+v", got.Points[0])
	}
	if got.Points[1].Label != "Pengeluaran" || got.Points[1].Value != 20000 {
		t.Fatalf("unexpected expense point %+v", got.Points[1])
	}
}

func TestBuildComparisonExpenseMatchesAllocation(t *testing.T) {
	s := core.Snapshot{
		Budgets: []core.Budget{budget("A", false, 700), budget("B", false, 300)},
		Daily:   []core.DailyExpense{{Amount: core.Money{Amount: 500}, Date: day(2025, 1, 1)}},
		Fund: []core.FundEntry{
			{Amount: core.Money{Amount: 100}, Date: day(2025, 1, 1), Type: core.FundRemove},
		},
	}
	alloc := BuildAllocation(s)
	comp := BuildComparison(s)
	if comp.Points[1].Value != alloc.Total() {
		t.Fatalf("comparison expense %d != allocation total %d", comp.Points[1].Value, alloc.Total())
	}
}

func TestEmptySnapshotYieldsEmptySeries(t *testing.T) {
	var s core.Snapshot
	for _, k := range []Kind{KindAllocation, KindTrend, KindComparison} {
		if got := Build(k, s); !got.Empty() {
			t.Fatalf("%s: expected empty series, got %+v", k, got.Points)
		}
		if EmptyMessage(k) == "" {
			t.Fatalf("%s: expected a placeholder message", k)
		}
	}
}
