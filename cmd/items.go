package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"julius/internal/ledger"
)

// parseItem parses a --item flag value into a ledger line item.
//
// Syntax: NAME:CATEGORY:PRICING[:DESCRIPTION]
//
//	PRICING forms:
//	  3x4.50      product, 3 units at 4.50 each
//	  1.2kg@9.90  product, 1.2 kg at 9.90 per kg
//	  25          service, flat 25 (optional description after)
func parseItem(s string) (ledger.Item, error) {
	parts := strings.SplitN(s, ":", 4)
	if len(parts) < 3 {
		return ledger.Item{}, fmt.Errorf("invalid item %q: want NAME:CATEGORY:PRICING", s)
	}

	name := strings.TrimSpace(parts[0])
	category := strings.TrimSpace(parts[1])
	pricing := strings.TrimSpace(parts[2])

	description := ""
	if len(parts) == 4 {
		description = strings.TrimSpace(parts[3])
	}

	switch {
	case strings.Contains(pricing, "kg@"):
		weightStr, kgStr, _ := strings.Cut(pricing, "kg@")
		weight, err := strconv.ParseFloat(weightStr, 64)
		if err != nil {
			return ledger.Item{}, fmt.Errorf("invalid item weight %q", weightStr)
		}
		kgValue, err := strconv.ParseFloat(kgStr, 64)
		if err != nil {
			return ledger.Item{}, fmt.Errorf("invalid item price per kg %q", kgStr)
		}
		return ledger.NewWeighedProduct(name, category, weight, kgValue)

	case strings.Contains(pricing, "x"):
		qtyStr, unitStr, _ := strings.Cut(pricing, "x")
		qty, err := strconv.ParseFloat(qtyStr, 64)
		if err != nil {
			return ledger.Item{}, fmt.Errorf("invalid item quantity %q", qtyStr)
		}
		unit, err := strconv.ParseFloat(unitStr, 64)
		if err != nil {
			return ledger.Item{}, fmt.Errorf("invalid item unit price %q", unitStr)
		}
		return ledger.NewUnitProduct(name, category, qty, unit)

	default:
		value, err := strconv.ParseFloat(pricing, 64)
		if err != nil {
			return ledger.Item{}, fmt.Errorf("invalid item pricing %q", pricing)
		}
		return ledger.NewService(name, category, value, description)
	}
}

func parseItems(specs []string) ([]ledger.Item, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	items := make([]ledger.Item, 0, len(specs))
	for _, s := range specs {
		item, err := parseItem(s)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
