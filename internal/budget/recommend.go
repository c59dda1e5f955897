package budget

import (
	"errors"
	"math"
)

// daysInPeriod is the canonical period-length table used by the
// recommendation calculator: a flat 30-day month and 365-day year.
var daysInPeriod = map[Frequency]float64{
	Daily:   1,
	Weekly:  7,
	Monthly: 30,
	Yearly:  365,
}

// RecommendedDaily suggests a daily allowance from periodic income,
// fixed expenses, and a savings target, spread over the period and
// rounded down to the nearest multiple of 5 so the suggestion never
// exceeds the true affordable figure. Any nil input yields nil.
func RecommendedDaily(income, fixedExpenses, savings *float64, period Frequency) *float64 {
	if income == nil || fixedExpenses == nil || savings == nil {
		return nil
	}

	available := *income - *fixedExpenses - *savings
	days, ok := daysInPeriod[period]
	if !ok {
		days = daysInPeriod[Monthly]
	}

	recommended := math.Floor(available/days/5) * 5
	return &recommended
}

// Profile holds the financial inputs behind the recommendation. All
// fields are optional; validation only applies to the ones present.
type Profile struct {
	MonthlyIncome    *float64 `json:"monthlyIncome"`
	FixedExpenses    *float64 `json:"fixedExpenses"`
	MandatorySavings *float64 `json:"mandatorySavings"`
}

// Validate checks the profile's internal consistency: income positive,
// expenses and savings non-negative, and the two together below income
// when everything is present.
func (p Profile) Validate() error {
	if p.MonthlyIncome != nil && *p.MonthlyIncome <= 0 {
		return errors.New("monthly income must be greater than zero")
	}
	if p.FixedExpenses != nil && *p.FixedExpenses < 0 {
		return errors.New("fixed expenses cannot be negative")
	}
	if p.MandatorySavings != nil && *p.MandatorySavings < 0 {
		return errors.New("mandatory savings cannot be negative")
	}
	if p.MonthlyIncome != nil && p.FixedExpenses != nil && p.MandatorySavings != nil {
		if *p.FixedExpenses+*p.MandatorySavings >= *p.MonthlyIncome {
			return errors.New("fixed expenses and savings cannot exceed monthly income")
		}
	}
	return nil
}

// Recommended is shorthand for RecommendedDaily over the profile's own
// fields.
func (p Profile) Recommended(period Frequency) *float64 {
	return RecommendedDaily(p.MonthlyIncome, p.FixedExpenses, p.MandatorySavings, period)
}
