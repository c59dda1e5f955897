// Package service coordinates the budget engine with the ledger store:
// entry logging with compensating adjustments, cycle changes, and the
// idempotent renewal credit.
package service

import (
	"fmt"
	"time"

	"julius/internal/budget"
	"julius/internal/ledger"
	"julius/internal/store"
)

// Service owns a store handle and a clock. The clock is injected so
// renewal and projection math can be pinned in tests; nil means
// time.Now.
type Service struct {
	store *store.Store
	clock func() time.Time
}

// New returns a Service over the given store.
func New(st *store.Store, clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{store: st, clock: clock}
}

// InitParams seeds a fresh budget.
type InitParams struct {
	DailyValue  float64
	RenewalHour int
	Cycle       *budget.Cycle
	Profile     budget.Profile
	// InitialBalance defaults to one daily value when nil: the first
	// tracked day starts already funded.
	InitialBalance *float64
}

// Initialize creates and persists the budget state. Any existing state
// is replaced.
func (s *Service) Initialize(p InitParams) (*budget.Budget, error) {
	if err := p.Profile.Validate(); err != nil {
		return nil, err
	}

	balance := p.DailyValue
	if p.InitialBalance != nil {
		balance = *p.InitialBalance
	}

	b, err := budget.New(p.DailyValue, p.RenewalHour, p.Cycle, balance, s.clock())
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveState(b.Snapshot(), p.Profile); err != nil {
		return nil, fmt.Errorf("saving budget: %w", err)
	}
	// The starting balance already covers today; renewals begin tomorrow.
	if err := s.store.SetLastRenewal(s.clock()); err != nil {
		return nil, fmt.Errorf("recording renewal baseline: %w", err)
	}
	return b, nil
}

// Current loads the budget with a freshly computed projection, plus the
// profile.
func (s *Service) Current() (*budget.Budget, budget.Profile, error) {
	snap, profile, err := s.store.LoadState()
	if err != nil {
		return nil, profile, err
	}
	b, err := budget.FromSnapshot(snap, s.clock())
	if err != nil {
		return nil, profile, err
	}
	return b, profile, nil
}

// AddExpense logs an expense, debits the balance, and persists both.
func (s *Service) AddExpense(value float64, name, category string, items []ledger.Item) (ledger.Expense, error) {
	now := s.clock()

	e, err := ledger.NewExpense(value, name, now)
	if err != nil {
		return ledger.Expense{}, err
	}
	if category != "" {
		if err := e.SetCategory(category); err != nil {
			return ledger.Expense{}, err
		}
	}
	for _, item := range items {
		e.AddItem(item)
	}

	if err := s.applyDelta(-e.Value, now); err != nil {
		return ledger.Expense{}, err
	}
	if err := s.store.SaveExpense(e); err != nil {
		return ledger.Expense{}, fmt.Errorf("saving expense: %w", err)
	}
	return e, nil
}

// AddIncome logs an income, credits the balance, and persists both.
func (s *Service) AddIncome(value float64, name string) (ledger.Income, error) {
	now := s.clock()

	in, err := ledger.NewIncome(value, name, now)
	if err != nil {
		return ledger.Income{}, err
	}

	if err := s.applyDelta(in.Value, now); err != nil {
		return ledger.Income{}, err
	}
	if err := s.store.SaveIncome(in); err != nil {
		return ledger.Income{}, fmt.Errorf("saving income: %w", err)
	}
	return in, nil
}

// UpdateExpense replaces an expense: the old value is reverted through a
// compensating income entry, and a fresh expense is logged for the new
// values. The balance moves only through those inverse entries.
func (s *Service) UpdateExpense(id string, value float64, name, category string, items []ledger.Item) (ledger.Expense, error) {
	old, err := s.store.GetExpense(id)
	if err != nil {
		return ledger.Expense{}, err
	}

	if _, err := s.AddIncome(old.Value, revertLabel(old.Name)); err != nil {
		return ledger.Expense{}, err
	}
	e, err := s.AddExpense(value, name, category, items)
	if err != nil {
		return ledger.Expense{}, err
	}
	if err := s.store.DeleteExpense(old.ID); err != nil {
		return ledger.Expense{}, err
	}
	return e, nil
}

// DeleteExpense removes an expense from the ledger and reverts its
// balance effect by crediting an equal income entry.
func (s *Service) DeleteExpense(id string) error {
	old, err := s.store.GetExpense(id)
	if err != nil {
		return err
	}
	if _, err := s.AddIncome(old.Value, revertLabel(old.Name)); err != nil {
		return err
	}
	return s.store.DeleteExpense(old.ID)
}

// UpdateIncome replaces an income entry via a compensating expense plus
// a fresh income.
func (s *Service) UpdateIncome(id string, value float64, name string) (ledger.Income, error) {
	old, err := s.store.GetIncome(id)
	if err != nil {
		return ledger.Income{}, err
	}

	if _, err := s.AddExpense(old.Value, revertLabel(old.Name), "", nil); err != nil {
		return ledger.Income{}, err
	}
	in, err := s.AddIncome(value, name)
	if err != nil {
		return ledger.Income{}, err
	}
	if err := s.store.DeleteIncome(old.ID); err != nil {
		return ledger.Income{}, err
	}
	return in, nil
}

// DeleteIncome removes an income entry and reverts its balance effect by
// logging an equal expense.
func (s *Service) DeleteIncome(id string) error {
	old, err := s.store.GetIncome(id)
	if err != nil {
		return err
	}
	if _, err := s.AddExpense(old.Value, revertLabel(old.Name), "", nil); err != nil {
		return err
	}
	return s.store.DeleteIncome(old.ID)
}

// SetCycle replaces the renewal cycle and persists the updated state.
func (s *Service) SetCycle(c budget.Cycle) (*budget.Budget, error) {
	b, profile, err := s.Current()
	if err != nil {
		return nil, err
	}
	b.SetCycle(c, s.clock())
	if err := s.store.SaveState(b.Snapshot(), profile); err != nil {
		return nil, fmt.Errorf("saving budget: %w", err)
	}
	return b, nil
}

// RenewIfDue credits the daily allowance at most once per calendar day,
// once the renewal hour has passed. The last applied credit is persisted
// so repeated checks (daemon polls, manual runs) never double-credit
// within the same renewal window.
func (s *Service) RenewIfDue() (bool, error) {
	now := s.clock()

	b, profile, err := s.Current()
	if err != nil {
		return false, err
	}

	last, have, err := s.store.LastRenewal()
	if err != nil {
		return false, err
	}

	due := now.Hour() >= b.RenewalHour()
	if have {
		due = due && !sameDay(last, now)
	}
	if !due {
		return false, nil
	}

	b.UpdateBalance(b.DailyValue(), now)
	if err := s.store.SaveState(b.Snapshot(), profile); err != nil {
		return false, fmt.Errorf("saving budget: %w", err)
	}
	if err := s.store.SetLastRenewal(now); err != nil {
		return false, fmt.Errorf("recording renewal: %w", err)
	}
	return true, nil
}

// Status bundles the current budget with its renewal outlook.
type Status struct {
	Budget        *budget.Budget
	Profile       budget.Profile
	NextRenewal   time.Time
	DaysRemaining int
}

// Status loads the budget and computes when it next renews.
func (s *Service) Status() (Status, error) {
	b, profile, err := s.Current()
	if err != nil {
		return Status{}, err
	}

	now := s.clock()
	next := b.NextRenewal(now)
	return Status{
		Budget:        b,
		Profile:       profile,
		NextRenewal:   next,
		DaysRemaining: budget.DaysUntil(next, now),
	}, nil
}

// Entry is one row of merged ledger history.
type Entry struct {
	ID        string
	Kind      string // "expense" or "income"
	Value     float64 // signed: expenses negative
	Name      string
	Category  string
	Timestamp time.Time
}

// History merges expenses and incomes in [since, until], oldest first.
func (s *Service) History(since, until time.Time) ([]Entry, error) {
	expenses, err := s.store.ListExpenses(since, until)
	if err != nil {
		return nil, err
	}
	incomes, err := s.store.ListIncomes(since, until)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(expenses)+len(incomes))
	for _, e := range expenses {
		entries = append(entries, Entry{
			ID:        e.ID,
			Kind:      "expense",
			Value:     -e.Value,
			Name:      e.Name,
			Category:  e.Category,
			Timestamp: e.Timestamp,
		})
	}
	for _, in := range incomes {
		entries = append(entries, Entry{
			ID:        in.ID,
			Kind:      "income",
			Value:     in.Value,
			Name:      in.Name,
			Timestamp: in.Timestamp,
		})
	}

	// Merge the two already-sorted lists.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].Timestamp.Before(entries[j-1].Timestamp); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
	return entries, nil
}

func (s *Service) applyDelta(delta float64, now time.Time) error {
	b, profile, err := s.Current()
	if err != nil {
		return err
	}
	b.UpdateBalance(delta, now)
	if err := s.store.SaveState(b.Snapshot(), profile); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}
	return nil
}

func revertLabel(name string) string {
	if name == "" {
		return "revert"
	}
	return "revert: " + name
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
