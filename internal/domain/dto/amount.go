package dto

import (
	"encoding/json"
	"reflect"

	"github.com/shopspring/decimal"
)

// Amount is a currency bound decoded straight into a decimal, so 10.1 stays 10.1.
// It accepts JSON numbers and numeric strings.
type Amount struct {
	decimal.Decimal
}

// NewAmount parses s; it panics on invalid input and is meant for literals.
func NewAmount(s string) *Amount {
	return &Amount{Decimal: decimal.RequireFromString(s)}
}

// UnmarshalJSON reports bad input as a *json.UnmarshalTypeError so the decoder
// attaches the field name to it.
func (a *Amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return &json.UnmarshalTypeError{
			Value: string(b),
			Type:  reflect.TypeOf(float64(0)),
		}
	}
	a.Decimal = d
	return nil
}

// DecimalPtr returns a copy of the bound, or nil when a is nil.
func (a *Amount) DecimalPtr() *decimal.Decimal {
	if a == nil {
		return nil
	}
	d := a.Decimal
	return &d
}
