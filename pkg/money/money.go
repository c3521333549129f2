// Package money provides currency-safe amounts for parsed transactions using
// integer minor units and the Fowler Money pattern. The capture flow deals in
// Iraqi dinars, colloquially stated in whole dinars.
package money

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// IQD is the ISO-4217 code for the Iraqi dinar.
const IQD = "IQD"

// Money represents a monetary value with currency. It wraps go-money for safe
// arithmetic and shopspring/decimal for precision conversions.
type Money struct {
	m *money.Money
}

// New creates a Money value from minor units and a currency code.
func New(amountMinor int64, currencyCode string) *Money {
	return &Money{m: money.New(amountMinor, currencyCode)}
}

// NewFromDecimal creates Money from a decimal major-unit value.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	currency := money.GetCurrency(currencyCode)
	if currency == nil {
		currency = money.GetCurrency(IQD)
	}
	multiplier := decimal.New(1, int32(currency.Fraction))
	minor := amount.Mul(multiplier).Round(0).IntPart()
	return New(minor, currencyCode)
}

// FromDinars creates an IQD Money value from a whole-dinar amount, the unit
// the capture parser produces.
func FromDinars(dinars decimal.Decimal) *Money {
	return NewFromDecimal(dinars, IQD)
}

// Zero returns a zero value for the given currency.
func Zero(currencyCode string) *Money {
	return New(0, currencyCode)
}

// Amount returns the amount in minor units.
func (m *Money) Amount() int64 {
	if m == nil || m.m == nil {
		return 0
	}
	return m.m.Amount()
}

// Currency returns the ISO-4217 currency code.
func (m *Money) Currency() string {
	if m == nil || m.m == nil {
		return ""
	}
	return m.m.Currency().Code
}

// IsZero returns true if the amount is zero.
func (m *Money) IsZero() bool {
	return m == nil || m.m == nil || m.m.IsZero()
}

// IsPositive returns true if the amount is greater than zero.
func (m *Money) IsPositive() bool {
	return m != nil && m.m != nil && m.m.IsPositive()
}

// Add adds two Money values. Returns an error if currencies don't match.
func (m *Money) Add(other *Money) (*Money, error) {
	if m == nil || m.m == nil {
		return other, nil
	}
	if other == nil || other.m == nil {
		return m, nil
	}
	result, err := m.m.Add(other.m)
	if err != nil {
		return nil, err
	}
	return &Money{m: result}, nil
}

// Equals returns true if both values are equal.
func (m *Money) Equals(other *Money) bool {
	if m == nil || m.m == nil {
		return other == nil || other.m == nil || other.IsZero()
	}
	if other == nil || other.m == nil {
		return m.IsZero()
	}
	eq, _ := m.m.Equals(other.m)
	return eq
}

// ToDecimal converts to a decimal major-unit value.
func (m *Money) ToDecimal() decimal.Decimal {
	if m == nil || m.m == nil {
		return decimal.Zero
	}
	d := decimal.NewFromInt(m.m.Amount())
	divisor := decimal.New(1, int32(m.m.Currency().Fraction))
	return d.Div(divisor)
}

// Display returns a locale-formatted string (e.g. ".د.ع 5,000.000").
func (m *Money) Display() string {
	if m == nil || m.m == nil {
		return Zero(IQD).Display()
	}
	return m.m.Display()
}
