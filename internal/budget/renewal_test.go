package budget

import (
	"testing"
	"time"
)

// refDate is Wednesday, March 12, 2025.
func refDate(hour, minute int) time.Time {
	return time.Date(2025, time.March, 12, hour, minute, 0, 0, time.Local)
}

func mustCycle(t *testing.T, freq Frequency, hour, day, month int) Cycle {
	t.Helper()
	c, err := NewCycle(freq, hour, day, month)
	if err != nil {
		t.Fatalf("NewCycle(%s, %d, %d, %d) failed: %v", freq, hour, day, month, err)
	}
	return c
}

func TestNextRenewalDaily(t *testing.T) {
	c := mustCycle(t, Daily, 8, 1, 0)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before renewal hour", refDate(7, 30), refDate(8, 0)},
		{"top of renewal hour", refDate(8, 0), refDate(8, 0).AddDate(0, 0, 1)},
		{"within renewal hour", refDate(8, 59), refDate(8, 0).AddDate(0, 0, 1)},
		{"after renewal hour", refDate(15, 0), refDate(8, 0).AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.NextRenewal(tt.now)
			if !got.Equal(tt.want) {
				t.Fatalf("NextRenewal(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestNextRenewalWeekly(t *testing.T) {
	tests := []struct {
		name string
		day  int // ISO weekday
		now  time.Time
		want time.Time
	}{
		// March 12, 2025 is a Wednesday (ISO 3).
		{"later this week", 5, refDate(9, 0), time.Date(2025, time.March, 14, 8, 0, 0, 0, time.Local)},
		{"anchor day, hour passed", 3, refDate(9, 0), time.Date(2025, time.March, 19, 8, 0, 0, 0, time.Local)},
		{"anchor day, hour ahead", 3, refDate(7, 0), refDate(8, 0)},
		{"other day, hour ahead", 1, refDate(7, 0), time.Date(2025, time.March, 17, 8, 0, 0, 0, time.Local)},
		{"wraps past weekend", 2, refDate(9, 0), time.Date(2025, time.March, 18, 8, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCycle(t, Weekly, 8, tt.day, 0)
			got := c.NextRenewal(tt.now)
			if !got.Equal(tt.want) {
				t.Fatalf("NextRenewal(%v) = %v, want %v", tt.now, got, tt.want)
			}
			if isoWeekday(got) != tt.day {
				t.Fatalf("NextRenewal landed on ISO weekday %d, want %d", isoWeekday(got), tt.day)
			}
		})
	}
}

func TestNextRenewalMonthly(t *testing.T) {
	tests := []struct {
		name string
		day  int
		now  time.Time
		want time.Time
	}{
		{"later this month", 20, refDate(9, 0), time.Date(2025, time.March, 20, 8, 0, 0, 0, time.Local)},
		{"already passed this month", 5, refDate(9, 0), time.Date(2025, time.April, 5, 8, 0, 0, 0, time.Local)},
		{"anchor day, hour passed", 12, refDate(9, 0), time.Date(2025, time.April, 12, 8, 0, 0, 0, time.Local)},
		{"anchor day, hour ahead", 12, refDate(7, 0), refDate(8, 0)},
		{
			"day 31 carries over short february",
			31,
			time.Date(2025, time.February, 10, 9, 0, 0, 0, time.Local),
			time.Date(2025, time.March, 3, 8, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCycle(t, Monthly, 8, tt.day, 0)
			got := c.NextRenewal(tt.now)
			if !got.Equal(tt.want) {
				t.Fatalf("NextRenewal(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestNextRenewalYearly(t *testing.T) {
	tests := []struct {
		name  string
		day   int
		month int
		now   time.Time
		want  time.Time
	}{
		{"later this year", 15, 6, refDate(9, 0), time.Date(2025, time.June, 15, 8, 0, 0, 0, time.Local)},
		{"already passed this year", 15, 1, refDate(9, 0), time.Date(2026, time.January, 15, 8, 0, 0, 0, time.Local)},
		{"anchor day, hour passed", 12, 3, refDate(9, 0), time.Date(2026, time.March, 12, 8, 0, 0, 0, time.Local)},
		{"anchor day, hour ahead", 12, 3, refDate(7, 0), refDate(8, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustCycle(t, Yearly, 8, tt.day, tt.month)
			got := c.NextRenewal(tt.now)
			if !got.Equal(tt.want) {
				t.Fatalf("NextRenewal(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

// TestNextRenewalBounds sweeps a year of reference instants and checks
// the output is always after the hour-truncated now and within one full
// period.
func TestNextRenewalBounds(t *testing.T) {
	cycles := []Cycle{
		mustCycle(t, Daily, 6, 1, 0),
		mustCycle(t, Weekly, 0, 7, 0),
		mustCycle(t, Monthly, 23, 31, 0),
		mustCycle(t, Yearly, 12, 29, 2),
	}
	maxPeriod := map[Frequency]time.Duration{
		Daily:   24 * time.Hour,
		Weekly:  7 * 24 * time.Hour,
		Monthly: 32 * 24 * time.Hour,
		Yearly:  366 * 24 * time.Hour,
	}

	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.Local)
	for _, c := range cycles {
		for i := 0; i < 365; i++ {
			now := start.AddDate(0, 0, i).Add(time.Duration(i%24)*time.Hour + 37*time.Minute)
			next := c.NextRenewal(now)

			truncated := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
			if next.Before(truncated) {
				t.Fatalf("%s cycle: NextRenewal(%v) = %v is before hour-truncated now", c.Frequency(), now, next)
			}
			if next.Sub(now) > maxPeriod[c.Frequency()] {
				t.Fatalf("%s cycle: NextRenewal(%v) = %v exceeds one period", c.Frequency(), now, next)
			}
			if next.Minute() != 0 || next.Second() != 0 {
				t.Fatalf("NextRenewal(%v) = %v not truncated to the hour", now, next)
			}
		}
	}
}

func TestDaysUntil(t *testing.T) {
	now := refDate(9, 0)

	tests := []struct {
		name string
		next time.Time
		want int
	}{
		{"tomorrow morning", refDate(8, 0).AddDate(0, 0, 1), 1},
		{"same instant", now, 1},
		{"just over a day", now.Add(25 * time.Hour), 2},
		{"one week", now.AddDate(0, 0, 7), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.next, now); got != tt.want {
				t.Fatalf("DaysUntil = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsoWeekday(t *testing.T) {
	// March 10, 2025 is a Monday; March 16 a Sunday.
	monday := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.Local)
	for i := 0; i < 7; i++ {
		if got := isoWeekday(monday.AddDate(0, 0, i)); got != i+1 {
			t.Fatalf("isoWeekday(monday+%d) = %d, want %d", i, got, i+1)
		}
	}
}
