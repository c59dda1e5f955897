// Package cli provides formatting and rendering utilities for terminal
// output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats an amount with the configured currency symbol.
// e.g., 1234.5 -> "$1,234.50", -42 -> "-$42.00"
func FormatMoney(symbol string, amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	whole := int64(amount)
	cents := int64((amount-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}

	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, FormatNumber(whole), cents)
}

// FormatSignedMoney is FormatMoney with an explicit + on positive
// amounts, used for ledger deltas.
func FormatSignedMoney(symbol string, amount float64) string {
	if amount >= 0 {
		return "+" + FormatMoney(symbol, amount)
	}
	return FormatMoney(symbol, amount)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatCountdown renders a duration as "2d 5h", "5h 12m", or "12m".
func FormatCountdown(d time.Duration) string {
	if d <= 0 {
		return "now"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// FormatCycle describes a cycle anchor in words, e.g.
// "weekly on Friday at 08:00" or "monthly on day 5 at 00:00".
func FormatCycle(frequency string, hour, day, month int) string {
	at := fmt.Sprintf("at %02d:00", hour)
	switch frequency {
	case "daily":
		return "daily " + at
	case "weekly":
		return fmt.Sprintf("weekly on %s %s", isoWeekdayName(day), at)
	case "monthly":
		return fmt.Sprintf("monthly on day %d %s", day, at)
	case "yearly":
		return fmt.Sprintf("yearly on %s %d %s", time.Month(month), day, at)
	}
	return frequency
}

// isoWeekdayName names an ISO weekday (1=Monday .. 7=Sunday).
func isoWeekdayName(day int) string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if day >= 1 && day <= 7 {
		return names[day-1]
	}
	return "?"
}
