package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType values as WooCommerce reports them.
const (
	DiscountPercent   = "percent"
	DiscountFixedCart = "fixed_cart"
)

type Coupon struct {
	ID           int64           `json:"id"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	DiscountType string          `json:"discount_type"`
	DateExpires  *time.Time      `json:"date_expires,omitempty"`
	UsageCount   int             `json:"usage_count"`
	UsageLimit   int             `json:"usage_limit"`
	MinimumSpend decimal.Decimal `json:"minimum_amount"`
}

// Usable reports whether the coupon is not expired and still under its
// usage limit. A zero usage limit means unlimited.
func (c *Coupon) Usable(now time.Time) bool {
	if c.DateExpires != nil && now.After(*c.DateExpires) {
		return false
	}
	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return false
	}
	return true
}

// DiscountOn returns the discount the coupon takes off the given cart
// subtotal. Percent coupons scale the subtotal; fixed coupons subtract a
// flat amount, capped at the subtotal. Zero when the minimum spend is
// not met.
func (c *Coupon) DiscountOn(subtotal decimal.Decimal) decimal.Decimal {
	if c.MinimumSpend.IsPositive() && subtotal.LessThan(c.MinimumSpend) {
		return decimal.Zero
	}
	switch c.DiscountType {
	case DiscountPercent:
		return subtotal.Mul(c.Amount).Div(decimal.NewFromInt(100))
	case DiscountFixedCart:
		if c.Amount.GreaterThan(subtotal) {
			return subtotal
		}
		return c.Amount
	}
	return decimal.Zero
}
