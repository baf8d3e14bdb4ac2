package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity is a cart line count. Decoding never fails: numeric strings are
// parsed and anything else becomes zero, leaving normalization to the cache.
type Quantity int

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		*q = 0
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*q = Quantity(int(v))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			*q = 0
			return nil
		}
		*q = Quantity(int(f))
	default:
		*q = 0
	}
	return nil
}

// CartLine is one entry of the local cart cache.
type CartLine struct {
	ProductID ID       `json:"product_id" yaml:"product_id"`
	Name      string   `json:"name" yaml:"name"`
	UnitPrice Price    `json:"unit_price" yaml:"unit_price"`
	ImagePath string   `json:"image_path" yaml:"image_path"`
	Quantity  Quantity `json:"quantity" yaml:"quantity"`
}

// Subtotal is unit price times quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the server-owned cart resource.
type Cart struct {
	ID     ID         `json:"id" yaml:"id"`
	UserID ID         `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Items  []CartItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// CartItem is a line of the server cart, also used as the add-item body.
type CartItem struct {
	ProductID ID    `json:"product_id" yaml:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" yaml:"quantity"`
	UnitPrice Price `json:"unit_price" yaml:"unit_price"`
}

// UpdateItemRequest is the body of PUT /items and PUT /cart/items.
type UpdateItemRequest struct {
	ProductID ID  `json:"product_id" validate:"required"`
	Quantity  int `json:"quantity"`
}

// RemoveItemRequest is the body of DELETE /cart/items.
type RemoveItemRequest struct {
	ProductID ID `json:"product_id" validate:"required"`
}
