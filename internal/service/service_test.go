package service

import (
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"julius/internal/budget"
	"julius/internal/store"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (*Service, *fixedClock) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "julius.db"))
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	clock := &fixedClock{now: time.Date(2025, time.March, 12, 9, 0, 0, 0, time.Local)}
	return New(st, clock.Now), clock
}

func initBudget(t *testing.T, svc *Service) *budget.Budget {
	t.Helper()
	cycle, err := budget.NewCycle(budget.Daily, 8, 1, 0)
	if err != nil {
		t.Fatalf("NewCycle failed: %v", err)
	}
	b, err := svc.Initialize(InitParams{DailyValue: 100, RenewalHour: 8, Cycle: &cycle})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return b
}

func TestInitializeSeedsFirstDay(t *testing.T) {
	svc, _ := newTestService(t)
	b := initBudget(t, svc)

	// Default initial balance is one daily value: day 1, not day 0.
	if b.Balance() != 100 {
		t.Fatalf("Balance = %.2f, want 100", b.Balance())
	}
	if _, ok := b.OPD(); !ok {
		t.Fatal("OPD absent after Initialize with a cycle")
	}
}

func TestInitializeExplicitBalance(t *testing.T) {
	svc, _ := newTestService(t)
	zero := 0.0
	b, err := svc.Initialize(InitParams{DailyValue: 100, RenewalHour: 8, InitialBalance: &zero})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if b.Balance() != 0 {
		t.Fatalf("Balance = %.2f, want 0", b.Balance())
	}
}

func TestInitializeRejectsBadProfile(t *testing.T) {
	svc, _ := newTestService(t)
	income, fixed, savings := 1000.0, 900.0, 200.0
	_, err := svc.Initialize(InitParams{
		DailyValue:  50,
		RenewalHour: 8,
		Profile: budget.Profile{
			MonthlyIncome:    &income,
			FixedExpenses:    &fixed,
			MandatorySavings: &savings,
		},
	})
	if err == nil {
		t.Fatal("Initialize with inconsistent profile succeeded, want error")
	}
}

func TestAddExpenseDebitsBalance(t *testing.T) {
	svc, _ := newTestService(t)
	initBudget(t, svc)

	e, err := svc.AddExpense(30, "lunch", "food", nil)
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if e.Category != "food" {
		t.Fatalf("Category = %q, want food", e.Category)
	}

	b, _, err := svc.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if b.Balance() != 70 {
		t.Fatalf("Balance = %.2f, want 70", b.Balance())
	}
}

func TestAddIncomeCreditsBalance(t *testing.T) {
	svc, _ := newTestService(t)
	initBudget(t, svc)

	if _, err := svc.AddIncome(45, "refund"); err != nil {
		t.Fatalf("AddIncome failed: %v", err)
	}

	b, _, _ := svc.Current()
	if b.Balance() != 145 {
		t.Fatalf("Balance = %.2f, want 145", b.Balance())
	}
}

func TestExpenseIncomeInversePair(t *testing.T) {
	svc, _ := newTestService(t)
	initBudget(t, svc)

	if _, err := svc.AddExpense(33.33, "", "", nil); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := svc.AddIncome(33.33, ""); err != nil {
		t.Fatalf("AddIncome failed: %v", err)
	}

	b, _, _ := svc.Current()
	if math.Abs(b.Balance()-100) > 1e-9 {
		t.Fatalf("Balance after inverse pair = %.4f, want 100", b.Balance())
	}
}

func TestDeleteExpenseRevertsThroughIncome(t *testing.T) {
	svc, clock := newTestService(t)
	initBudget(t, svc)

	e, err := svc.AddExpense(40, "cinema", "fun", nil)
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	clock.now = clock.now.Add(time.Minute)

	if err := svc.DeleteExpense(e.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	b, _, _ := svc.Current()
	if b.Balance() != 100 {
		t.Fatalf("Balance = %.2f, want 100", b.Balance())
	}

	// The expense is gone but its reversal stays in the ledger history.
	entries, err := svc.History(clock.now.Add(-time.Hour), clock.now.Add(time.Hour))
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	var incomes, expenses int
	for _, entry := range entries {
		switch entry.Kind {
		case "income":
			incomes++
		case "expense":
			expenses++
		}
	}
	if expenses != 0 || incomes != 1 {
		t.Fatalf("history has %d expenses, %d incomes; want 0 and 1", expenses, incomes)
	}
}

func TestDeleteExpenseMissing(t *testing.T) {
	svc, _ := newTestService(t)
	initBudget(t, svc)

	if err := svc.DeleteExpense("nope"); !errors.Is(err, store.ErrEntryNotFound) {
		t.Fatalf("DeleteExpense error = %v, want ErrEntryNotFound", err)
	}
}

func TestUpdateExpense(t *testing.T) {
	svc, clock := newTestService(t)
	initBudget(t, svc)

	e, err := svc.AddExpense(40, "cinema", "fun", nil)
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	clock.now = clock.now.Add(time.Minute)

	updated, err := svc.UpdateExpense(e.ID, 25, "cinema matinee", "fun", nil)
	if err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	if updated.ID == e.ID {
		t.Fatal("updated expense reused the old id")
	}

	// 100 - 40 + 40 (revert) - 25 = 75.
	b, _, _ := svc.Current()
	if b.Balance() != 75 {
		t.Fatalf("Balance = %.2f, want 75", b.Balance())
	}

	if _, err := svc.store.GetExpense(e.ID); !errors.Is(err, store.ErrEntryNotFound) {
		t.Fatalf("old expense lookup error = %v, want ErrEntryNotFound", err)
	}
	if _, err := svc.store.GetExpense(updated.ID); err != nil {
		t.Fatalf("new expense lookup failed: %v", err)
	}
}

func TestUpdateIncome(t *testing.T) {
	svc, clock := newTestService(t)
	initBudget(t, svc)

	in, err := svc.AddIncome(200, "bonus")
	if err != nil {
		t.Fatalf("AddIncome failed: %v", err)
	}
	clock.now = clock.now.Add(time.Minute)

	if _, err := svc.UpdateIncome(in.ID, 150, "bonus, corrected"); err != nil {
		t.Fatalf("UpdateIncome failed: %v", err)
	}

	// 100 + 200 - 200 (revert) + 150 = 250.
	b, _, _ := svc.Current()
	if b.Balance() != 250 {
		t.Fatalf("Balance = %.2f, want 250", b.Balance())
	}
}

func TestDeleteIncomeRevertsThroughExpense(t *testing.T) {
	svc, clock := newTestService(t)
	initBudget(t, svc)

	in, err := svc.AddIncome(60, "refund")
	if err != nil {
		t.Fatalf("AddIncome failed: %v", err)
	}
	clock.now = clock.now.Add(time.Minute)

	if err := svc.DeleteIncome(in.ID); err != nil {
		t.Fatalf("DeleteIncome failed: %v", err)
	}

	b, _, _ := svc.Current()
	if b.Balance() != 100 {
		t.Fatalf("Balance = %.2f, want 100", b.Balance())
	}
}

func TestRenewIfDue(t *testing.T) {
	svc, clock := newTestService(t)
	initBudget(t, svc)

	// 07:00, before the 08:00 renewal hour: nothing due.
	clock.now = time.Date(2025, time.March, 13, 7, 0, 0, 0, time.Local)
	applied, err := svc.RenewIfDue()
	if err != nil {
		t.Fatalf("RenewIfDue failed: %v", err)
	}
	if applied {
		t.Fatal("renewal applied before the renewal hour")
	}

	// 08:30 the same day: due.
	clock.now = time.Date(2025, time.March, 13, 8, 30, 0, 0, time.Local)
	applied, err = svc.RenewIfDue()
	if err != nil {
		t.Fatalf("RenewIfDue failed: %v", err)
	}
	if !applied {
		t.Fatal("renewal not applied after the renewal hour")
	}
	b, _, _ := svc.Current()
	if b.Balance() != 200 {
		t.Fatalf("Balance = %.2f, want 200", b.Balance())
	}

	// Later the same day: already credited.
	clock.now = time.Date(2025, time.March, 13, 19, 0, 0, 0, time.Local)
	applied, _ = svc.RenewIfDue()
	if applied {
		t.Fatal("renewal double-credited within the same day")
	}

	// Next day after the hour: due again.
	clock.now = time.Date(2025, time.March, 14, 8, 0, 0, 0, time.Local)
	applied, _ = svc.RenewIfDue()
	if !applied {
		t.Fatal("renewal not applied on the following day")
	}
	b, _, _ = svc.Current()
	if b.Balance() != 300 {
		t.Fatalf("Balance = %.2f, want 300", b.Balance())
	}
}

func TestStatusRenewalOutlook(t *testing.T) {
	svc, _ := newTestService(t)
	initBudget(t, svc)

	// Daily cycle at 08:00 with the clock at 09:00: the next renewal is
	// tomorrow morning.
	st, err := svc.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	want := time.Date(2025, time.March, 13, 8, 0, 0, 0, time.Local)
	if !st.NextRenewal.Equal(want) {
		t.Fatalf("NextRenewal = %v, want %v", st.NextRenewal, want)
	}
	if st.DaysRemaining != 1 {
		t.Fatalf("DaysRemaining = %d, want 1", st.DaysRemaining)
	}
	if st.Budget.Balance() != 100 {
		t.Fatalf("Balance = %.2f, want 100", st.Budget.Balance())
	}
}

func TestHistoryMergesSorted(t *testing.T) {
	svc, clock := newTestService(t)
	initBudget(t, svc)
	start := clock.now

	if _, err := svc.AddExpense(10, "a", "", nil); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	clock.now = clock.now.Add(time.Minute)
	if _, err := svc.AddIncome(20, "b"); err != nil {
		t.Fatalf("AddIncome failed: %v", err)
	}
	clock.now = clock.now.Add(time.Minute)
	if _, err := svc.AddExpense(30, "c", "", nil); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}

	entries, err := svc.History(start.Add(-time.Hour), clock.now.Add(time.Hour))
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Value != -10 || entries[1].Value != 20 || entries[2].Value != -30 {
		t.Fatalf("entry values = %.0f, %.0f, %.0f; want -10, 20, -30",
			entries[0].Value, entries[1].Value, entries[2].Value)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Before(entries[i-1].Timestamp) {
			t.Fatal("history not sorted by timestamp")
		}
	}
}

func TestSetCycleRefreshesProjection(t *testing.T) {
	svc, _ := newTestService(t)
	b, err := svc.Initialize(InitParams{DailyValue: 100, RenewalHour: 8})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if _, ok := b.OPD(); ok {
		t.Fatal("OPD present without a cycle")
	}

	weekly, err := budget.NewCycle(budget.Weekly, 8, 5, 0)
	if err != nil {
		t.Fatalf("NewCycle failed: %v", err)
	}
	b, err = svc.SetCycle(weekly)
	if err != nil {
		t.Fatalf("SetCycle failed: %v", err)
	}
	if _, ok := b.OPD(); !ok {
		t.Fatal("OPD absent after SetCycle")
	}

	// Persisted too.
	b, _, err = svc.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if c, ok := b.Cycle(); !ok || c != weekly {
		t.Fatalf("stored cycle = %+v, want %+v", c, weekly)
	}
}
