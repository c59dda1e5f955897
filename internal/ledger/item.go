package ledger

import (
	"errors"
	"strings"
)

// ItemKind distinguishes the two expense line-item shapes.
type ItemKind string

// Line-item kinds.
const (
	KindProduct ItemKind = "product"
	KindService ItemKind = "service"
)

// Item is one expense line: a product priced by quantity or weight, or
// a flat-value service. Exactly one pricing pair is populated for
// products; services carry a flat value.
type Item struct {
	Kind     ItemKind `json:"type"`
	Name     string   `json:"name"`
	Category string   `json:"category"`

	// Product pricing: quantity x unit value, or weight x per-kilogram.
	Quantity      float64 `json:"quantity,omitempty"`
	UnitValue     float64 `json:"unitaryValue,omitempty"`
	Weight        float64 `json:"weight,omitempty"`
	KilogramValue float64 `json:"kilogramValue,omitempty"`

	// Service pricing.
	Value       float64 `json:"value,omitempty"`
	Description string  `json:"description,omitempty"`
}

// NewUnitProduct builds a product line priced per unit.
func NewUnitProduct(name, category string, quantity, unitValue float64) (Item, error) {
	if err := validateItemLabels(name, category); err != nil {
		return Item{}, err
	}
	if quantity <= 0 {
		return Item{}, errors.New("quantity must be greater than zero")
	}
	if unitValue <= 0 {
		return Item{}, errors.New("unit value must be greater than zero")
	}
	return Item{
		Kind:      KindProduct,
		Name:      name,
		Category:  category,
		Quantity:  quantity,
		UnitValue: unitValue,
	}, nil
}

// NewWeighedProduct builds a product line priced per kilogram.
func NewWeighedProduct(name, category string, weight, kilogramValue float64) (Item, error) {
	if err := validateItemLabels(name, category); err != nil {
		return Item{}, err
	}
	if weight <= 0 {
		return Item{}, errors.New("weight must be greater than zero")
	}
	if kilogramValue <= 0 {
		return Item{}, errors.New("kilogram value must be greater than zero")
	}
	return Item{
		Kind:          KindProduct,
		Name:          name,
		Category:      category,
		Weight:        weight,
		KilogramValue: kilogramValue,
	}, nil
}

// NewService builds a flat-value service line.
func NewService(name, category string, value float64, description string) (Item, error) {
	if err := validateItemLabels(name, category); err != nil {
		return Item{}, err
	}
	if value <= 0 {
		return Item{}, errors.New("service value must be greater than zero")
	}
	if description != "" && strings.TrimSpace(description) == "" {
		return Item{}, errors.New("service description cannot be blank if provided")
	}
	return Item{
		Kind:        KindService,
		Name:        name,
		Category:    category,
		Value:       value,
		Description: description,
	}, nil
}

// Total computes the line's value from its pricing fields.
func (it Item) Total() float64 {
	if it.Kind == KindService {
		return it.Value
	}
	if it.Quantity > 0 {
		return it.Quantity * it.UnitValue
	}
	return it.Weight * it.KilogramValue
}

func validateItemLabels(name, category string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("item name cannot be empty")
	}
	if strings.TrimSpace(category) == "" {
		return errors.New("item category cannot be empty")
	}
	return nil
}
