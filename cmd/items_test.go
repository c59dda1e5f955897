package cmd

import (
	"math"
	"testing"

	"julius/internal/ledger"
)

func TestParseItemUnitProduct(t *testing.T) {
	item, err := parseItem("apples:groceries:3x4.50")
	if err != nil {
		t.Fatalf("parseItem failed: %v", err)
	}
	if item.Kind != ledger.KindProduct {
		t.Fatalf("Kind = %q, want product", item.Kind)
	}
	if item.Quantity != 3 || item.UnitValue != 4.5 {
		t.Fatalf("pricing = %vx%v, want 3x4.5", item.Quantity, item.UnitValue)
	}
	if item.Total() != 13.5 {
		t.Fatalf("Total = %v, want 13.5", item.Total())
	}
}

func TestParseItemWeighedProduct(t *testing.T) {
	item, err := parseItem("tomatoes:groceries:1.2kg@9.90")
	if err != nil {
		t.Fatalf("parseItem failed: %v", err)
	}
	if item.Weight != 1.2 || item.KilogramValue != 9.9 {
		t.Fatalf("pricing = %vkg@%v, want 1.2kg@9.9", item.Weight, item.KilogramValue)
	}
	if math.Abs(item.Total()-11.88) > 1e-9 {
		t.Fatalf("Total = %v, want 11.88", item.Total())
	}
}

func TestParseItemService(t *testing.T) {
	item, err := parseItem("haircut:personal:25:with beard trim")
	if err != nil {
		t.Fatalf("parseItem failed: %v", err)
	}
	if item.Kind != ledger.KindService {
		t.Fatalf("Kind = %q, want service", item.Kind)
	}
	if item.Value != 25 || item.Description != "with beard trim" {
		t.Fatalf("item = %+v, want value 25 with description", item)
	}
}

func TestParseItemInvalid(t *testing.T) {
	tests := []string{
		"apples:3x4.50",          // missing category
		"apples:groceries:x4.50", // missing quantity
		"apples:groceries:3x",    // missing unit price
		"apples:groceries:kg@9",  // missing weight
		"apples:groceries:free",  // not a number
		":groceries:5",           // blank name
	}

	for _, s := range tests {
		if _, err := parseItem(s); err == nil {
			t.Fatalf("parseItem(%q) succeeded, want error", s)
		}
	}
}

func TestParseItemsCollects(t *testing.T) {
	items, err := parseItems([]string{
		"apples:groceries:3x4.50",
		"haircut:personal:25",
	})
	if err != nil {
		t.Fatalf("parseItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}

	if _, err := parseItems([]string{"bad"}); err == nil {
		t.Fatal("parseItems with malformed spec succeeded, want error")
	}
}
