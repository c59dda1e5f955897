package budget

import (
	"fmt"
	"time"
)

// Budget tracks the daily allowance and running balance for one user,
// along with the derived OPD ("amount per day") projection: how much can
// be spent per day from now until the next cycle renewal while draining
// the balance evenly.
//
// The clock is always passed in by the caller; Budget never reads
// ambient time.
type Budget struct {
	dailyValue  float64
	renewalHour int // hour the daily allowance is credited, 0-23
	balance     float64
	cycle       *Cycle
	opd         *float64
}

// New builds a Budget and computes its initial projection at now.
// cycle may be nil, in which case no OPD is available until one is set.
func New(dailyValue float64, renewalHour int, cycle *Cycle, balance float64, now time.Time) (*Budget, error) {
	if renewalHour < 0 || renewalHour > 23 {
		return nil, fmt.Errorf("%w: daily renewal hour must be between 0 and 23", ErrInvalidCycle)
	}

	b := &Budget{
		dailyValue:  dailyValue,
		renewalHour: renewalHour,
		balance:     balance,
	}
	if cycle != nil {
		c := *cycle
		b.cycle = &c
	}
	b.recalculate(now)
	return b, nil
}

// DailyValue returns the amount credited to the balance each renewal.
func (b *Budget) DailyValue() float64 { return b.dailyValue }

// RenewalHour returns the hour of day the daily allowance is credited.
func (b *Budget) RenewalHour() int { return b.renewalHour }

// Balance returns the running balance. It may be negative; overspending
// is representable, not rejected.
func (b *Budget) Balance() float64 { return b.balance }

// Cycle returns the configured renewal cycle, if any.
func (b *Budget) Cycle() (Cycle, bool) {
	if b.cycle == nil {
		return Cycle{}, false
	}
	return *b.cycle, true
}

// OPD returns the projected safe daily spend until the next renewal.
// The second return is false when no cycle is configured.
func (b *Budget) OPD() (float64, bool) {
	if b.opd == nil {
		return 0, false
	}
	return *b.opd, true
}

// UpdateBalance applies a signed delta to the balance and refreshes the
// projection. Expenses pass a negative delta, incomes a positive one.
func (b *Budget) UpdateBalance(delta float64, now time.Time) {
	b.balance += delta
	b.recalculate(now)
}

// SetCycle replaces the renewal cycle wholesale and refreshes the
// projection.
func (b *Budget) SetCycle(c Cycle, now time.Time) {
	b.cycle = &c
	b.recalculate(now)
}

// NextRenewal returns the next cycle renewal instant. Without a cycle it
// returns now, an internal default that is never surfaced as a
// projection.
func (b *Budget) NextRenewal(now time.Time) time.Time {
	if b.cycle == nil {
		return now
	}
	return b.cycle.NextRenewal(now)
}

// recalculate derives OPD from the balance, the daily value, and the
// days remaining until the next renewal. The balance already includes
// today's credited allowance, so today counts in full alongside each
// future day's provisioned credit, spread over all days to go.
func (b *Budget) recalculate(now time.Time) {
	if b.cycle == nil {
		b.opd = nil
		return
	}

	next := b.cycle.NextRenewal(now)
	days := DaysUntil(next, now)
	opd := (b.balance + float64(days-1)*b.dailyValue) / float64(days)
	b.opd = &opd
}

// Snapshot is the persisted-state contract for a Budget. External
// storage must round-trip it losslessly, except OPD, which is always
// recomputed on load and never trusted from storage.
type Snapshot struct {
	DailyValue       float64  `json:"dailyValue"`
	DailyRenewalHour int      `json:"dailyRenewalHour"`
	Cycle            *Cycle   `json:"cycle"`
	Balance          float64  `json:"balance"`
	OPD              *float64 `json:"opd"`
}

// Snapshot captures the budget in its serialized shape.
func (b *Budget) Snapshot() Snapshot {
	s := Snapshot{
		DailyValue:       b.dailyValue,
		DailyRenewalHour: b.renewalHour,
		Balance:          b.balance,
	}
	if b.cycle != nil {
		c := *b.cycle
		s.Cycle = &c
	}
	if b.opd != nil {
		v := *b.opd
		s.OPD = &v
	}
	return s
}

// FromSnapshot rebuilds a Budget from stored state, recomputing the
// projection at now.
func FromSnapshot(s Snapshot, now time.Time) (*Budget, error) {
	return New(s.DailyValue, s.DailyRenewalHour, s.Cycle, s.Balance, now)
}
