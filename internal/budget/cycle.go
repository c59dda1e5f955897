// Package budget implements the allowance engine: renewal cycles, the
// next-renewal calculator, the running balance with its per-day spending
// projection, and the recommended daily budget calculator.
package budget

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidCycle is returned when a cycle is configured with an
// out-of-range hour, day, or month, or with a month outside a yearly
// frequency. It is raised at construction and never recoverable by retry.
var ErrInvalidCycle = errors.New("invalid cycle configuration")

// Frequency is how often a cycle renews.
type Frequency string

// Supported cycle frequencies.
const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// Frequencies lists every valid frequency, in period order.
var Frequencies = []Frequency{Daily, Weekly, Monthly, Yearly}

// ParseFrequency converts a string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case Daily, Weekly, Monthly, Yearly:
		return Frequency(s), nil
	}
	return "", fmt.Errorf("%w: unknown frequency %q", ErrInvalidCycle, s)
}

// Cycle is an immutable recurrence rule: a frequency plus the hour, day,
// and (for yearly cycles) month at which the budget renews. Replace it
// wholesale via Budget.SetCycle; never mutate one in place.
type Cycle struct {
	frequency    Frequency
	renewalHour  int // 0-23
	renewalDay   int // weekly: ISO weekday 1-7 (1=Monday); monthly/yearly: 1-31
	renewalMonth int // yearly only: 1-12; 0 otherwise
}

// NewCycle validates and builds a Cycle. month must be 0 for every
// frequency except yearly, where it is mandatory and 1-12. Day 31 is
// accepted for monthly/yearly even though some months are shorter; the
// renewal calculator carries the overflow into the following month.
func NewCycle(frequency Frequency, hour, day, month int) (Cycle, error) {
	if hour < 0 || hour > 23 {
		return Cycle{}, fmt.Errorf("%w: renewal hour must be between 0 and 23", ErrInvalidCycle)
	}

	switch frequency {
	case Daily:
		// Day anchor unused.
	case Weekly:
		if day < 1 || day > 7 {
			return Cycle{}, fmt.Errorf("%w: weekly renewal day must be between 1 and 7", ErrInvalidCycle)
		}
	case Monthly, Yearly:
		if day < 1 || day > 31 {
			return Cycle{}, fmt.Errorf("%w: %s renewal day must be between 1 and 31", ErrInvalidCycle, frequency)
		}
	default:
		return Cycle{}, fmt.Errorf("%w: unknown frequency %q", ErrInvalidCycle, frequency)
	}

	if frequency == Yearly {
		if month == 0 {
			return Cycle{}, fmt.Errorf("%w: yearly frequency requires a renewal month", ErrInvalidCycle)
		}
		if month < 1 || month > 12 {
			return Cycle{}, fmt.Errorf("%w: yearly renewal month must be between 1 and 12", ErrInvalidCycle)
		}
	} else if month != 0 {
		return Cycle{}, fmt.Errorf("%w: renewal month can only be set for yearly frequency", ErrInvalidCycle)
	}

	return Cycle{
		frequency:    frequency,
		renewalHour:  hour,
		renewalDay:   day,
		renewalMonth: month,
	}, nil
}

// Frequency returns how often the cycle renews.
func (c Cycle) Frequency() Frequency { return c.frequency }

// RenewalHour returns the hour of day (0-23) the cycle renews at.
func (c Cycle) RenewalHour() int { return c.renewalHour }

// RenewalDay returns the day anchor: ISO weekday for weekly cycles,
// day of month for monthly and yearly ones.
func (c Cycle) RenewalDay() int { return c.renewalDay }

// RenewalMonth returns the month anchor for yearly cycles, 0 otherwise.
func (c Cycle) RenewalMonth() int { return c.renewalMonth }

// cycleJSON is the wire shape of a cycle. renewalMonth serializes as
// null for non-yearly frequencies.
type cycleJSON struct {
	Name         Frequency `json:"name"`
	RenewalHour  int       `json:"renewalHour"`
	RenewalDay   int       `json:"renewalDay"`
	RenewalMonth *int      `json:"renewalMonth"`
}

// MarshalJSON implements json.Marshaler.
func (c Cycle) MarshalJSON() ([]byte, error) {
	out := cycleJSON{
		Name:        c.frequency,
		RenewalHour: c.renewalHour,
		RenewalDay:  c.renewalDay,
	}
	if c.renewalMonth != 0 {
		m := c.renewalMonth
		out.RenewalMonth = &m
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler, revalidating the stored
// configuration.
func (c *Cycle) UnmarshalJSON(data []byte) error {
	var in cycleJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	month := 0
	if in.RenewalMonth != nil {
		month = *in.RenewalMonth
	}
	parsed, err := NewCycle(in.Name, in.RenewalHour, in.RenewalDay, month)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
