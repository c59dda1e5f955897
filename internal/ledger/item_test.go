package ledger

import "testing"

func TestItemTotals(t *testing.T) {
	tests := []struct {
		name string
		make func() (Item, error)
		want float64
	}{
		{"unit product", func() (Item, error) { return NewUnitProduct("eggs", "food", 12, 0.75) }, 9},
		{"weighed product", func() (Item, error) { return NewWeighedProduct("beef", "food", 0.8, 45) }, 36},
		{"service", func() (Item, error) { return NewService("haircut", "care", 60, "") }, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := tt.make()
			if err != nil {
				t.Fatalf("constructor failed: %v", err)
			}
			if got := item.Total(); got != tt.want {
				t.Fatalf("Total = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestItemValidation(t *testing.T) {
	tests := []struct {
		name string
		make func() (Item, error)
	}{
		{"empty name", func() (Item, error) { return NewUnitProduct("", "food", 1, 1) }},
		{"empty category", func() (Item, error) { return NewUnitProduct("eggs", " ", 1, 1) }},
		{"zero quantity", func() (Item, error) { return NewUnitProduct("eggs", "food", 0, 1) }},
		{"zero unit value", func() (Item, error) { return NewUnitProduct("eggs", "food", 1, 0) }},
		{"zero weight", func() (Item, error) { return NewWeighedProduct("rice", "food", 0, 8) }},
		{"zero kilogram value", func() (Item, error) { return NewWeighedProduct("rice", "food", 1, 0) }},
		{"zero service value", func() (Item, error) { return NewService("wash", "care", 0, "") }},
		{"blank description", func() (Item, error) { return NewService("wash", "care", 10, "  ") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.make(); err == nil {
				t.Fatal("constructor succeeded, want error")
			}
		})
	}
}
