package models

import (
	"github.com/shopspring/decimal"
)

// Money is a currency amount serialized as a JSON number with exactly two decimals.
//
// It embeds decimal.Decimal so arithmetic, comparison and sql.Scanner support
// come for free; only JSON rendering is overridden.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to cents (half away from zero).
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// MustMoney parses a decimal literal; it panics on malformed input and is meant for fixtures.
func MustMoney(s string) Money {
	return NewMoney(decimal.RequireFromString(s))
}

// MarshalJSON renders the amount as a bare number, e.g. 30.00.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}

// String returns the two-decimal representation.
func (m Money) String() string {
	return m.StringFixed(2)
}
