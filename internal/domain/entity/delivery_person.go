package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	domainerrors "pizzeria/internal/domain/errors"
)

// DeliveryPerson is a courier. Availability is an operational flag toggled per
// shift; active marks whether the courier still works here at all.
type DeliveryPerson struct {
	Base

	firstName    string
	lastName     string
	phoneNumber  string
	vehiclePlate string
	isAvailable  bool
	isActive     bool
}

// NewDeliveryPerson validates and creates an active, available courier.
func NewDeliveryPerson(firstName, lastName, phoneNumber, vehiclePlate string) (*DeliveryPerson, error) {
	person, err := buildDeliveryPerson(firstName, lastName, phoneNumber, vehiclePlate, true, true)
	if err != nil {
		return nil, err
	}
	person.Base = newBase()

	return person, nil
}

// RehydrateDeliveryPerson reconstructs a persisted courier, keeping stored
// identity, timestamps and flags.
func RehydrateDeliveryPerson(id uuid.UUID, firstName, lastName, phoneNumber, vehiclePlate string, isAvailable, isActive bool, createdAt, updatedAt time.Time) (*DeliveryPerson, error) {
	person, err := buildDeliveryPerson(firstName, lastName, phoneNumber, vehiclePlate, isAvailable, isActive)
	if err != nil {
		return nil, err
	}
	person.Base = rehydrateBase(id, createdAt, updatedAt)

	return person, nil
}

func buildDeliveryPerson(firstName, lastName, phoneNumber, vehiclePlate string, isAvailable, isActive bool) (*DeliveryPerson, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	phoneNumber = strings.TrimSpace(phoneNumber)
	vehiclePlate = strings.TrimSpace(vehiclePlate)

	switch "" {
	case firstName:
		return nil, domainerrors.NewRuleViolation("first name cannot be empty")
	case lastName:
		return nil, domainerrors.NewRuleViolation("last name cannot be empty")
	case phoneNumber:
		return nil, domainerrors.NewRuleViolation("phone number cannot be empty")
	case vehiclePlate:
		return nil, domainerrors.NewRuleViolation("vehicle plate cannot be empty")
	}

	return &DeliveryPerson{
		firstName:    firstName,
		lastName:     lastName,
		phoneNumber:  phoneNumber,
		vehiclePlate: vehiclePlate,
		isAvailable:  isAvailable,
		isActive:     isActive,
	}, nil
}

// SetAvailability toggles the per-shift availability flag.
func (d *DeliveryPerson) SetAvailability(isAvailable bool) {
	d.isAvailable = isAvailable
	d.touch()
}

// Deactivate removes the courier from service entirely.
func (d *DeliveryPerson) Deactivate() {
	d.isActive = false
	d.isAvailable = false
	d.touch()
}

// FirstName returns the first name.
func (d *DeliveryPerson) FirstName() string { return d.firstName }

// LastName returns the last name.
func (d *DeliveryPerson) LastName() string { return d.lastName }

// FullName returns "first last".
func (d *DeliveryPerson) FullName() string { return d.firstName + " " + d.lastName }

// PhoneNumber returns the contact phone number.
func (d *DeliveryPerson) PhoneNumber() string { return d.phoneNumber }

// VehiclePlate returns the courier's vehicle plate.
func (d *DeliveryPerson) VehiclePlate() string { return d.vehiclePlate }

// IsAvailable reports whether the courier can take a delivery right now.
func (d *DeliveryPerson) IsAvailable() bool { return d.isAvailable }

// IsActive reports whether the courier is still in service.
func (d *DeliveryPerson) IsActive() bool { return d.isActive }
