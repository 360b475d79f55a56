// Package storage persists budgets, daily expenses and fund entries in
// SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"grafik/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = time.RFC3339

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateBudget inserts a new, non-archived budget and returns its ID.
func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) (int64, error) {
	if err := b.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (name, color) VALUES (?, ?)`, b.Name, b.Color)
	if err != nil {
		return 0, fmt.Errorf("create budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("budget insert id: %w", err)
	}

	slog.InfoContext(ctx, "Budget created", "id", id, "name", b.Name)
	return id, nil
}

// ArchiveBudget flags a budget as archived so it no longer contributes to
// any aggregate.
func (r *SQLiteRepository) ArchiveBudget(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE budgets SET archived = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("archive budget: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive budget rows: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	slog.InfoContext(ctx, "Budget archived", "id", id)
	return nil
}

// AppendBudgetEntry adds an allocation to an existing budget's history.
func (r *SQLiteRepository) AppendBudgetEntry(ctx context.Context, budgetID int64, e core.BudgetEntry) (int64, error) {
	if err := e.Validate(); err != nil {
		return 0, err
	}

	var exists int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM budgets WHERE id = ?`, budgetID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check budget: %w", err)
	}
	if exists == 0 {
		return 0, sql.ErrNoRows
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO budget_entries (budget_id, amount, entry_date) VALUES (?, ?, ?)`,
		budgetID, e.Amount.Amount, e.Date.UTC().Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("append budget entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("budget entry insert id: %w", err)
	}

	slog.InfoContext(ctx, "Budget entry saved",
		"id", id, "budget_id", budgetID, "amount", e.Amount.Amount)
	return id, nil
}

// AddDailyExpense records a day-to-day expense outside any budget.
func (r *SQLiteRepository) AddDailyExpense(ctx context.Context, d core.DailyExpense) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_expenses (amount, description, entry_date) VALUES (?, ?, ?)`,
		d.Amount.Amount, d.Description, d.Date.UTC().Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("add daily expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("daily expense insert id: %w", err)
	}

	slog.InfoContext(ctx, "Daily expense saved", "id", id, "amount", d.Amount.Amount)
	return id, nil
}

// AddFundEntry records an addition to or a removal from the general fund.
func (r *SQLiteRepository) AddFundEntry(ctx context.Context, f core.FundEntry) (int64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO fund_entries (amount, entry_type, entry_date) VALUES (?, ?, ?)`,
		f.Amount.Amount, string(f.Type), f.Date.UTC().Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("add fund entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("fund entry insert id: %w", err)
	}

	slog.InfoContext(ctx, "Fund entry saved",
		"id", id, "type", string(f.Type), "amount", f.Amount.Amount)
	return id, nil
}

// Snapshot loads everything the chart aggregators need in one pass.
func (r *SQLiteRepository) Snapshot(ctx context.Context) (core.Snapshot, error) {
	var snap core.Snapshot

	budgets, err := r.loadBudgets(ctx)
	if err != nil {
		return snap, err
	}
	snap.Budgets = budgets

	snap.Daily, err = r.loadDailyExpenses(ctx)
	if err != nil {
		return snap, err
	}

	snap.Fund, err = r.loadFundEntries(ctx)
	if err != nil {
		return snap, err
	}

	return snap, nil
}

func (r *SQLiteRepository) loadBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, archived FROM budgets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	index := make(map[int64]int)
	for rows.Next() {
		var b core.Budget
		var archived int
		if err := rows.Scan(&b.ID, &b.Name, &b.Color, &archived); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		b.Archived = archived != 0
		index[b.ID] = len(budgets)
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}

	entryRows, err := r.db.QueryContext(ctx,
		`SELECT budget_id, amount, entry_date FROM budget_entries ORDER BY entry_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list budget entries: %w", err)
	}
	defer entryRows.Close()

	for entryRows.Next() {
		var budgetID, amount int64
		var rawDate string
		if err := entryRows.Scan(&budgetID, &amount, &rawDate); err != nil {
			return nil, fmt.Errorf("scan budget entry: %w", err)
		}
		i, ok := index[budgetID]
		if !ok {
			continue
		}
		date, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse budget entry date %q: %w", rawDate, err)
		}
		budgets[i].History = append(budgets[i].History, core.BudgetEntry{
			Amount: core.Money{Amount: amount},
			Date:   date,
		})
	}
	if err := entryRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budget entries: %w", err)
	}

	return budgets, nil
}

func (r *SQLiteRepository) loadDailyExpenses(ctx context.Context) ([]core.DailyExpense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT amount, description, entry_date FROM daily_expenses ORDER BY entry_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list daily expenses: %w", err)
	}
	defer rows.Close()

	var out []core.DailyExpense
	for rows.Next() {
		var d core.DailyExpense
		var amount int64
		var rawDate string
		if err := rows.Scan(&amount, &d.Description, &rawDate); err != nil {
			return nil, fmt.Errorf("scan daily expense: %w", err)
		}
		date, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse daily expense date %q: %w", rawDate, err)
		}
		d.Amount = core.Money{Amount: amount}
		d.Date = date
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) loadFundEntries(ctx context.Context) ([]core.FundEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT amount, entry_type, entry_date FROM fund_entries ORDER BY entry_date, id`)
	if err != nil {
		return nil, fmt.Errorf("list fund entries: %w", err)
	}
	defer rows.Close()

	var out []core.FundEntry
	for rows.Next() {
		var amount int64
		var entryType, rawDate string
		if err := rows.Scan(&amount, &entryType, &rawDate); err != nil {
			return nil, fmt.Errorf("scan fund entry: %w", err)
		}
		date, err := time.Parse(dateLayout, rawDate)
		if err != nil {
			return nil, fmt.Errorf("parse fund entry date %q: %w", rawDate, err)
		}
		out = append(out, core.FundEntry{
			Amount: core.Money{Amount: amount},
			Type:   core.FundEntryType(entryType),
			Date:   date,
		})
	}
	return out, rows.Err()
}
