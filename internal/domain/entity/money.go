package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainerrors "pizzeria/internal/domain/errors"
)

// DefaultCurrency is the currency the legacy store was provisioned with.
const DefaultCurrency = "EUR"

// Money is an exact decimal amount in a single currency. Arithmetic is only
// defined between instances of the same currency; mixing currencies is an
// invariant violation, never a silent coercion.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney creates a money value. The currency code must be a non-empty
// three-letter code and the amount must not be negative.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if len(currency) != 3 {
		return Money{}, domainerrors.NewRuleViolation("currency must be a three-letter code")
	}
	if amount.IsNegative() {
		return Money{}, domainerrors.NewRuleViolation("money amount cannot be negative")
	}

	return Money{amount: amount, currency: currency}, nil
}

// ZeroMoney returns the zero amount in the given currency.
func ZeroMoney(currency string) Money {
	return Money{amount: decimal.Zero, currency: strings.ToUpper(strings.TrimSpace(currency))}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal { return m.amount }

// Currency returns the currency code.
func (m Money) Currency() string { return m.currency }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount.IsZero() }

// Add returns the sum of two amounts of the same currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, domainerrors.NewRuleViolation(
			fmt.Sprintf("cannot add %s to %s", other.currency, m.currency))
	}

	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// MultiplyInt returns the amount multiplied by a whole factor.
func (m Money) MultiplyInt(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor))), currency: m.currency}
}

// Equal reports whether two money values have the same currency and amount.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the amount with its currency code, e.g. "29.00 EUR".
func (m Money) String() string {
	return m.amount.StringFixed(2) + " " + m.currency
}
