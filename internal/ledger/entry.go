// Package ledger defines the append-only expense and income entries the
// balance is adjusted against, including itemized expense lines.
package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Expense is a single logged spend. Value and name are fixed at
// construction; edits at the budget level are modeled as compensating
// entries, never in-place mutation.
type Expense struct {
	ID        string    `json:"id"`
	Value     float64   `json:"value"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Items     []Item    `json:"items,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Income is a single logged credit.
type Income struct {
	ID        string    `json:"id"`
	Value     float64   `json:"value"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpense builds an expense created at now. The value must be
// positive; a name, if given, must not be blank.
func NewExpense(value float64, name string, now time.Time) (Expense, error) {
	if err := validateValue(value, "expense"); err != nil {
		return Expense{}, err
	}
	if err := validateName(name); err != nil {
		return Expense{}, err
	}
	return Expense{
		ID:        uuid.NewString(),
		Value:     value,
		Name:      name,
		Timestamp: now,
	}, nil
}

// NewIncome builds an income created at now.
func NewIncome(value float64, name string, now time.Time) (Income, error) {
	if err := validateValue(value, "income"); err != nil {
		return Income{}, err
	}
	if err := validateName(name); err != nil {
		return Income{}, err
	}
	return Income{
		ID:        uuid.NewString(),
		Value:     value,
		Name:      name,
		Timestamp: now,
	}, nil
}

// SetCategory assigns a non-blank category to the expense.
func (e *Expense) SetCategory(category string) error {
	if strings.TrimSpace(category) == "" {
		return errors.New("category cannot be empty")
	}
	e.Category = category
	return nil
}

// AddItem appends a line item. Item totals are entered independently and
// need not sum to the expense's own value.
func (e *Expense) AddItem(item Item) {
	e.Items = append(e.Items, item)
}

// ItemsTotal sums the computed value of every line item.
func (e Expense) ItemsTotal() float64 {
	var total float64
	for _, item := range e.Items {
		total += item.Total()
	}
	return total
}

func validateValue(value float64, kind string) error {
	if value <= 0 {
		return errors.New(kind + " value must be greater than zero")
	}
	return nil
}

func validateName(name string) error {
	if name != "" && strings.TrimSpace(name) == "" {
		return errors.New("name cannot be blank if provided")
	}
	return nil
}
