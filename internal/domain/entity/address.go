package entity

import (
	"strings"

	domainerrors "pizzeria/internal/domain/errors"
)

// Address is a delivery destination. All five fields are required; the legacy
// store persists them as flat columns on the owning row.
type Address struct {
	street  string
	city    string
	state   string
	zipCode string
	country string
}

// NewAddress validates and creates a delivery address.
func NewAddress(street, city, state, zipCode, country string) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	zipCode = strings.TrimSpace(zipCode)
	country = strings.TrimSpace(country)

	switch "" {
	case street:
		return Address{}, domainerrors.NewRuleViolation("street cannot be empty")
	case city:
		return Address{}, domainerrors.NewRuleViolation("city cannot be empty")
	case state:
		return Address{}, domainerrors.NewRuleViolation("state cannot be empty")
	case zipCode:
		return Address{}, domainerrors.NewRuleViolation("zip code cannot be empty")
	case country:
		return Address{}, domainerrors.NewRuleViolation("country cannot be empty")
	}

	return Address{
		street:  street,
		city:    city,
		state:   state,
		zipCode: zipCode,
		country: country,
	}, nil
}

// Street returns the street line.
func (a Address) Street() string { return a.street }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the state or province.
func (a Address) State() string { return a.state }

// ZipCode returns the postal code.
func (a Address) ZipCode() string { return a.zipCode }

// Country returns the country.
func (a Address) Country() string { return a.country }

// IsZero reports whether the address was never set.
func (a Address) IsZero() bool {
	return a == Address{}
}
