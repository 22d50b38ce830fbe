package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "pizzeria/internal/domain/errors"
)

// PizzaSize is the size variant of a catalog pizza.
type PizzaSize string

const (
	// PizzaSizeSmall is the small variant.
	PizzaSizeSmall PizzaSize = "Small"
	// PizzaSizeMedium is the medium variant.
	PizzaSizeMedium PizzaSize = "Medium"
	// PizzaSizeLarge is the large variant.
	PizzaSizeLarge PizzaSize = "Large"
	// PizzaSizeFamiliar is the family-sized variant.
	PizzaSizeFamiliar PizzaSize = "Familiar"
)

// String returns the string representation of the PizzaSize.
func (s PizzaSize) String() string {
	return string(s)
}

// IsValid checks if the PizzaSize is a valid value.
func (s PizzaSize) IsValid() bool {
	switch s {
	case PizzaSizeSmall, PizzaSizeMedium, PizzaSizeLarge, PizzaSizeFamiliar:
		return true
	default:
		return false
	}
}

// ParsePizzaSize converts a persisted size name back to a PizzaSize.
func ParsePizzaSize(name string) (PizzaSize, error) {
	size := PizzaSize(name)
	if !size.IsValid() {
		return "", domainerrors.NewRuleViolation("unknown pizza size: " + name)
	}

	return size, nil
}

// Pizza is a catalog entry. Its base price is snapshotted onto order items when
// they are added.
type Pizza struct {
	Base

	name        string
	description string
	basePrice   Money
	size        PizzaSize
	isAvailable bool
}

// NewPizza validates and creates a catalog pizza.
func NewPizza(name, description string, basePrice Money, size PizzaSize, isAvailable bool) (*Pizza, error) {
	pizza, err := buildPizza(name, description, basePrice, size, isAvailable)
	if err != nil {
		return nil, err
	}
	pizza.Base = newBase()

	return pizza, nil
}

// RehydratePizza reconstructs a persisted pizza, keeping stored identity and
// timestamps.
func RehydratePizza(id uuid.UUID, name, description string, basePrice Money, size PizzaSize, isAvailable bool, createdAt, updatedAt time.Time) (*Pizza, error) {
	pizza, err := buildPizza(name, description, basePrice, size, isAvailable)
	if err != nil {
		return nil, err
	}
	pizza.Base = rehydrateBase(id, createdAt, updatedAt)

	return pizza, nil
}

func buildPizza(name, description string, basePrice Money, size PizzaSize, isAvailable bool) (*Pizza, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return nil, domainerrors.NewRuleViolation("pizza name cannot be empty")
	}
	if description == "" {
		return nil, domainerrors.NewRuleViolation("pizza description cannot be empty")
	}
	if !size.IsValid() {
		return nil, domainerrors.NewRuleViolation("unknown pizza size: " + size.String())
	}

	return &Pizza{
		name:        name,
		description: description,
		basePrice:   basePrice,
		size:        size,
		isAvailable: isAvailable,
	}, nil
}

// UpdatePrice replaces the base price.
func (p *Pizza) UpdatePrice(newPrice Money) error {
	if newPrice.IsZero() {
		return domainerrors.NewRuleViolation("price cannot be zero")
	}

	p.basePrice = newPrice
	p.touch()

	return nil
}

// SetAvailability toggles whether the pizza can be ordered.
func (p *Pizza) SetAvailability(isAvailable bool) {
	p.isAvailable = isAvailable
	p.touch()
}

// Name returns the catalog name.
func (p *Pizza) Name() string { return p.name }

// Description returns the catalog description.
func (p *Pizza) Description() string { return p.description }

// BasePrice returns the current base price.
func (p *Pizza) BasePrice() Money { return p.basePrice }

// Size returns the size variant.
func (p *Pizza) Size() PizzaSize { return p.size }

// IsAvailable reports whether the pizza can currently be ordered.
func (p *Pizza) IsAvailable() bool { return p.isAvailable }
