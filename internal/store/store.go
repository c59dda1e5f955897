// Package store provides the SQLite-backed persistence layer for the
// budget state, the ledger, and the renewal log.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"julius/internal/budget"
	"julius/internal/ledger"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNoBudget is returned when no budget has been initialized yet.
var ErrNoBudget = errors.New("no budget initialized")

// ErrEntryNotFound is returned when a ledger entry lookup by id finds
// nothing.
var ErrEntryNotFound = errors.New("ledger entry not found")

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveState upserts the singleton budget row along with the profile.
// The OPD projection is never persisted; it is recomputed on load.
func (s *Store) SaveState(snap budget.Snapshot, profile budget.Profile) error {
	var freq sql.NullString
	var hour, day, month sql.NullInt64
	if snap.Cycle != nil {
		c := snap.Cycle
		freq = sql.NullString{String: string(c.Frequency()), Valid: true}
		hour = sql.NullInt64{Int64: int64(c.RenewalHour()), Valid: true}
		day = sql.NullInt64{Int64: int64(c.RenewalDay()), Valid: true}
		if c.RenewalMonth() != 0 {
			month = sql.NullInt64{Int64: int64(c.RenewalMonth()), Valid: true}
		}
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO budget
		(id, daily_value, renewal_hour, balance,
		 cycle_frequency, cycle_hour, cycle_day, cycle_month,
		 monthly_income, fixed_expenses, mandatory_savings, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.DailyValue, snap.DailyRenewalHour, snap.Balance,
		freq, hour, day, month,
		nullFloat(profile.MonthlyIncome), nullFloat(profile.FixedExpenses), nullFloat(profile.MandatorySavings),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// LoadState reads the budget snapshot and profile. Returns ErrNoBudget
// when setup has not run yet.
func (s *Store) LoadState() (budget.Snapshot, budget.Profile, error) {
	var snap budget.Snapshot
	var profile budget.Profile
	var freq sql.NullString
	var hour, day, month sql.NullInt64
	var income, fixed, savings sql.NullFloat64

	err := s.db.QueryRow(`SELECT daily_value, renewal_hour, balance,
		cycle_frequency, cycle_hour, cycle_day, cycle_month,
		monthly_income, fixed_expenses, mandatory_savings
		FROM budget WHERE id = 1`).Scan(
		&snap.DailyValue, &snap.DailyRenewalHour, &snap.Balance,
		&freq, &hour, &day, &month,
		&income, &fixed, &savings,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, profile, ErrNoBudget
	}
	if err != nil {
		return snap, profile, err
	}

	if freq.Valid {
		m := 0
		if month.Valid {
			m = int(month.Int64)
		}
		c, err := budget.NewCycle(budget.Frequency(freq.String), int(hour.Int64), int(day.Int64), m)
		if err != nil {
			return snap, profile, fmt.Errorf("stored cycle: %w", err)
		}
		snap.Cycle = &c
	}

	profile.MonthlyIncome = floatPtr(income)
	profile.FixedExpenses = floatPtr(fixed)
	profile.MandatorySavings = floatPtr(savings)
	return snap, profile, nil
}

// SaveExpense stores an expense and its line items in one transaction.
func (s *Store) SaveExpense(e ledger.Expense) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT OR REPLACE INTO expenses
		(expense_id, value, name, category, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Value, e.Name, e.Category, e.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM expense_items WHERE expense_id = ?", e.ID); err != nil {
		return err
	}

	for i, item := range e.Items {
		_, err = tx.Exec(`INSERT INTO expense_items
			(expense_id, position, kind, name, category,
			 quantity, unit_value, weight, kilogram_value, flat_value, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, i, string(item.Kind), item.Name, item.Category,
			item.Quantity, item.UnitValue, item.Weight, item.KilogramValue,
			item.Value, item.Description,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetExpense loads one expense with its items.
func (s *Store) GetExpense(id string) (ledger.Expense, error) {
	var e ledger.Expense
	var created string

	err := s.db.QueryRow(`SELECT expense_id, value, name, category, created_at
		FROM expenses WHERE expense_id = ?`, id).Scan(
		&e.ID, &e.Value, &e.Name, &e.Category, &created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return e, ErrEntryNotFound
	}
	if err != nil {
		return e, err
	}
	e.Timestamp = parseTime(created)

	items, err := s.loadItems(e.ID)
	if err != nil {
		return e, err
	}
	e.Items = items
	return e, nil
}

// DeleteExpense removes an expense (items cascade).
func (s *Store) DeleteExpense(id string) error {
	res, err := s.db.Exec("DELETE FROM expenses WHERE expense_id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ListExpenses returns expenses created within [since, until], oldest
// first.
func (s *Store) ListExpenses(since, until time.Time) ([]ledger.Expense, error) {
	rows, err := s.db.Query(`SELECT expense_id, value, name, category, created_at
		FROM expenses WHERE created_at >= ? AND created_at <= ?
		ORDER BY created_at`,
		since.UTC().Format(time.RFC3339Nano), until.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var expenses []ledger.Expense
	for rows.Next() {
		var e ledger.Expense
		var created string
		if err := rows.Scan(&e.ID, &e.Value, &e.Name, &e.Category, &created); err != nil {
			return nil, err
		}
		e.Timestamp = parseTime(created)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range expenses {
		items, err := s.loadItems(expenses[i].ID)
		if err != nil {
			return nil, err
		}
		expenses[i].Items = items
	}
	return expenses, nil
}

// SaveIncome stores an income entry.
func (s *Store) SaveIncome(in ledger.Income) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO incomes
		(income_id, value, name, created_at)
		VALUES (?, ?, ?, ?)`,
		in.ID, in.Value, in.Name, in.Timestamp.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// GetIncome loads one income entry.
func (s *Store) GetIncome(id string) (ledger.Income, error) {
	var in ledger.Income
	var created string

	err := s.db.QueryRow(`SELECT income_id, value, name, created_at
		FROM incomes WHERE income_id = ?`, id).Scan(
		&in.ID, &in.Value, &in.Name, &created,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return in, ErrEntryNotFound
	}
	if err != nil {
		return in, err
	}
	in.Timestamp = parseTime(created)
	return in, nil
}

// DeleteIncome removes an income entry.
func (s *Store) DeleteIncome(id string) error {
	res, err := s.db.Exec("DELETE FROM incomes WHERE income_id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ListIncomes returns incomes created within [since, until], oldest
// first.
func (s *Store) ListIncomes(since, until time.Time) ([]ledger.Income, error) {
	rows, err := s.db.Query(`SELECT income_id, value, name, created_at
		FROM incomes WHERE created_at >= ? AND created_at <= ?
		ORDER BY created_at`,
		since.UTC().Format(time.RFC3339Nano), until.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var incomes []ledger.Income
	for rows.Next() {
		var in ledger.Income
		var created string
		if err := rows.Scan(&in.ID, &in.Value, &in.Name, &created); err != nil {
			return nil, err
		}
		in.Timestamp = parseTime(created)
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

// LastRenewal returns the timestamp of the last applied renewal credit,
// if any.
func (s *Store) LastRenewal() (time.Time, bool, error) {
	var applied string
	err := s.db.QueryRow("SELECT applied_at FROM renewal_log WHERE id = 1").Scan(&applied)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return parseTime(applied), true, nil
}

// SetLastRenewal records when a renewal credit was applied.
func (s *Store) SetLastRenewal(t time.Time) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO renewal_log (id, applied_at)
		VALUES (1, ?)`, t.UTC().Format(time.RFC3339Nano))
	return err
}

func (s *Store) loadItems(expenseID string) ([]ledger.Item, error) {
	rows, err := s.db.Query(`SELECT kind, name, category,
		quantity, unit_value, weight, kilogram_value, flat_value, description
		FROM expense_items WHERE expense_id = ? ORDER BY position`, expenseID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []ledger.Item
	for rows.Next() {
		var it ledger.Item
		var kind string
		if err := rows.Scan(&kind, &it.Name, &it.Category,
			&it.Quantity, &it.UnitValue, &it.Weight, &it.KilogramValue,
			&it.Value, &it.Description); err != nil {
			return nil, err
		}
		it.Kind = ledger.ItemKind(kind)
		items = append(items, it)
	}
	return items, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t.Local()
}
