package model

import (
	"github.com/shopspring/decimal"
)

// Price is a money amount. It is written to JSON as a bare number and
// read from either a number or a numeric string.
type Price struct {
	decimal.Decimal
}

// NewPrice builds a Price from a float.
func NewPrice(v float64) Price {
	return Price{Decimal: decimal.NewFromFloat(v)}
}

// MarshalJSON implements json.Marshaler.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Price) UnmarshalJSON(b []byte) error {
	if string(b) == "null" || string(b) == `""` {
		p.Decimal = decimal.Zero
		return nil
	}
	return p.Decimal.UnmarshalJSON(b)
}

// MarshalYAML renders the price as a plain number.
func (p Price) MarshalYAML() (interface{}, error) {
	return p.InexactFloat64(), nil
}
