package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine pairs a product snapshot with the quantity the visitor wants.
// Quantity never falls below 1 while the line exists.
type CartLine struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// Subtotal is effective price times quantity.
func (l *CartLine) Subtotal() decimal.Decimal {
	return l.Product.EffectivePrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds the lines for one browsing session, at most one line per
// product id, in insertion order.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalItems is the sum of line quantities.
func (c *Cart) TotalItems() int {
	var n int
	for i := range c.Lines {
		n += c.Lines[i].Quantity
	}
	return n
}

// TotalPrice is the sum of line subtotals. Rounding to two decimals
// happens at the presentation edge, not here.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Lines {
		total = total.Add(c.Lines[i].Subtotal())
	}
	return total
}
