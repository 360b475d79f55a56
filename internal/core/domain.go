package core

import (
	"errors"
	"strings"
	"time"
)

const (
	FundAdd    FundEntryType = "add"
	FundRemove FundEntryType = "remove"
)

type (
	FundEntryType string

	Money struct {
		Amount int64
	}

	// BudgetEntry is a single allocation of money to a budget.
	BudgetEntry struct {
		Amount Money
		Date   time.Time
	}

	Budget struct {
		ID       int64
		Name     string
		Color    string // hex color like "#4F46E5", may be empty
		Archived bool
		History  []BudgetEntry
	}

	// DailyExpense is a day-to-day expense outside any budget.
	DailyExpense struct {
		Amount      Money
		Date        time.Time
		Description string
	}

	// FundEntry is an addition to or removal from the general fund.
	FundEntry struct {
		Amount Money
		Date   time.Time
		Type   FundEntryType
	}

	// Snapshot is everything the chart aggregators need, loaded in one pass.
	Snapshot struct {
		Budgets []Budget
		Daily   []DailyExpense
		Fund    []FundEntry
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyName       = errors.New("empty budget name")
	ErrInvalidFundType = errors.New("invalid fund entry type")
	ErrInvalidColor    = errors.New("invalid color")
)

func (m Money) Validate() error {
	if m.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Total sums the budget's history. Amounts are non-negative by invariant,
// so the total never underflows.
func (b Budget) Total() Money {
	var sum int64
	for _, e := range b.History {
		sum += e.Amount.Amount
	}
	return Money{Amount: sum}
}

func (b Budget) Validate() error {
	if len(strings.TrimSpace(b.Name)) == 0 {
		return ErrEmptyName
	}
	if len(b.Name) > 100 {
		return errors.New("budget name too long (max 100 characters)")
	}
	if b.Color != "" && !strings.HasPrefix(b.Color, "#") {
		return ErrInvalidColor
	}
	return nil
}

func (e BudgetEntry) Validate() error {
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return e.Amount.Validate()
}

func (d DailyExpense) Validate() error {
	if d.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(d.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return d.Amount.Validate()
}

func (f FundEntry) Validate() error {
	if f.Date.IsZero() {
		return ErrInvalidDate
	}
	switch f.Type {
	case FundAdd, FundRemove:
	default:
		return ErrInvalidFundType
	}
	return f.Amount.Validate()
}

// Empty reports whether the snapshot carries no records at all.
func (s Snapshot) Empty() bool {
	return len(s.Budgets) == 0 && len(s.Daily) == 0 && len(s.Fund) == 0
}
