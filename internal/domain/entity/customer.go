package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "pizzeria/internal/domain/errors"
)

// Customer is a registered buyer. The default address is optional; orders carry
// their own delivery address.
type Customer struct {
	Base

	firstName      string
	lastName       string
	email          string
	phoneNumber    string
	defaultAddress *Address
	isActive       bool
}

// NewCustomer validates and creates an active customer.
func NewCustomer(firstName, lastName, email, phoneNumber string, defaultAddress *Address) (*Customer, error) {
	customer, err := buildCustomer(firstName, lastName, email, phoneNumber, defaultAddress, true)
	if err != nil {
		return nil, err
	}
	customer.Base = newBase()

	return customer, nil
}

// RehydrateCustomer reconstructs a persisted customer, keeping stored identity,
// timestamps and active flag.
func RehydrateCustomer(id uuid.UUID, firstName, lastName, email, phoneNumber string, defaultAddress *Address, isActive bool, createdAt, updatedAt time.Time) (*Customer, error) {
	customer, err := buildCustomer(firstName, lastName, email, phoneNumber, defaultAddress, isActive)
	if err != nil {
		return nil, err
	}
	customer.Base = rehydrateBase(id, createdAt, updatedAt)

	return customer, nil
}

func buildCustomer(firstName, lastName, email, phoneNumber string, defaultAddress *Address, isActive bool) (*Customer, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	phoneNumber = strings.TrimSpace(phoneNumber)

	switch "" {
	case firstName:
		return nil, domainerrors.NewRuleViolation("first name cannot be empty")
	case lastName:
		return nil, domainerrors.NewRuleViolation("last name cannot be empty")
	case email:
		return nil, domainerrors.NewRuleViolation("email cannot be empty")
	case phoneNumber:
		return nil, domainerrors.NewRuleViolation("phone number cannot be empty")
	}

	return &Customer{
		firstName:      firstName,
		lastName:       lastName,
		email:          email,
		phoneNumber:    phoneNumber,
		defaultAddress: defaultAddress,
		isActive:       isActive,
	}, nil
}

// UpdateContactInfo replaces the customer's contact details.
func (c *Customer) UpdateContactInfo(email, phoneNumber string, defaultAddress *Address) error {
	email = strings.TrimSpace(email)
	phoneNumber = strings.TrimSpace(phoneNumber)
	if email == "" {
		return domainerrors.NewRuleViolation("email cannot be empty")
	}
	if phoneNumber == "" {
		return domainerrors.NewRuleViolation("phone number cannot be empty")
	}

	c.email = email
	c.phoneNumber = phoneNumber
	c.defaultAddress = defaultAddress
	c.touch()

	return nil
}

// Deactivate marks the customer inactive.
func (c *Customer) Deactivate() {
	c.isActive = false
	c.touch()
}

// FirstName returns the first name.
func (c *Customer) FirstName() string { return c.firstName }

// LastName returns the last name.
func (c *Customer) LastName() string { return c.lastName }

// FullName returns "first last".
func (c *Customer) FullName() string { return c.firstName + " " + c.lastName }

// Email returns the contact email.
func (c *Customer) Email() string { return c.email }

// PhoneNumber returns the contact phone number.
func (c *Customer) PhoneNumber() string { return c.phoneNumber }

// DefaultAddress returns the optional default delivery address.
func (c *Customer) DefaultAddress() *Address { return c.defaultAddress }

// IsActive reports whether the customer can place orders.
func (c *Customer) IsActive() bool { return c.isActive }
