package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code
type Currency string

// USD is the fallback for stored prices that carry no currency code
const USD Currency = "USD"

// DefaultCurrency is used when a stored price carries no currency code
const DefaultCurrency = USD

// Money is an immutable decimal amount in one currency
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney builds Money. An empty currency becomes DefaultCurrency.
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{amount: amount, currency: currency}
}

// ParseMoney builds Money from a decimal string such as "19.99"
func ParseMoney(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return NewMoney(d, currency), nil
}

// MustMoney is ParseMoney for fixtures and constants. It panics on
// malformed input.
func MustMoney(amount string, currency Currency) Money {
	m, err := ParseMoney(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns a zero-value Money in the specified currency
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns a new Money with the sum of both amounts.
// A zero value without currency adopts the other operand's currency.
func (m Money) Add(other Money) (Money, error) {
	if m.currency == "" {
		m.currency = other.currency
	}
	if other.currency != "" && m.currency != other.currency {
		return Money{}, fmt.Errorf("cannot add money with different currencies: %s and %s", m.currency, other.currency)
	}
	return Money{
		amount:   m.amount.Add(other.amount),
		currency: m.currency,
	}, nil
}

// Round rounds half away from zero to the given number of places
func (m Money) Round(places int32) Money {
	return Money{
		amount:   m.amount.Round(places),
		currency: m.currency,
	}
}

// Number returns the amount as a plain decimal number with two places,
// the representation ShipStation expects for prices.
func (m Money) Number() string {
	return m.amount.StringFixed(2)
}

// String returns a human readable representation
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}
