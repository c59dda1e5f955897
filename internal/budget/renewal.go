package budget

import (
	"math"
	"time"
)

// NextRenewal computes the next instant the cycle renews, relative to
// now in now's location. The result is truncated to the renewal hour
// (zero minutes and seconds) and is always after the hour-truncated now
// and at most one full period away.
//
// "Passed" is hour-granular: renewal is due from the top of the renewal
// hour onward, regardless of minutes. A candidate falling on a day the
// month doesn't have (day 31 in a 30-day month) carries into the
// following month.
func (c Cycle) NextRenewal(now time.Time) time.Time {
	loc := now.Location()
	hourPassed := now.Hour() >= c.renewalHour

	switch c.frequency {
	case Weekly:
		candidate := time.Date(now.Year(), now.Month(), now.Day(), c.renewalHour, 0, 0, 0, loc)
		if hourPassed {
			candidate = candidate.AddDate(0, 0, 1)
		}
		for isoWeekday(candidate) != c.renewalDay {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate

	case Monthly:
		candidate := time.Date(now.Year(), now.Month(), c.renewalDay, c.renewalHour, 0, 0, 0, loc)
		if !candidate.After(now) {
			candidate = time.Date(now.Year(), now.Month()+1, c.renewalDay, c.renewalHour, 0, 0, 0, loc)
		}
		return candidate

	case Yearly:
		candidate := time.Date(now.Year(), time.Month(c.renewalMonth), c.renewalDay, c.renewalHour, 0, 0, 0, loc)
		if !candidate.After(now) {
			candidate = time.Date(now.Year()+1, time.Month(c.renewalMonth), c.renewalDay, c.renewalHour, 0, 0, 0, loc)
		}
		return candidate

	default: // Daily
		candidate := time.Date(now.Year(), now.Month(), now.Day(), c.renewalHour, 0, 0, 0, loc)
		if hourPassed {
			candidate = candidate.AddDate(0, 0, 1)
		}
		return candidate
	}
}

// DaysUntil returns the number of days from now until next, rounded up,
// never less than 1. A same-instant renewal still counts as one day so
// the projection never divides by zero.
func DaysUntil(next, now time.Time) int {
	days := int(math.Ceil(next.Sub(now).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// isoWeekday maps time.Weekday (Sunday=0) to ISO numbering (Monday=1,
// Sunday=7).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
