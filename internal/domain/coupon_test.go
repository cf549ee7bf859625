package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCoupon_Usable(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	fresh := Coupon{Code: "FRESH", DateExpires: &future}
	assert.True(t, fresh.Usable(now))

	expired := Coupon{Code: "OLD", DateExpires: &past}
	assert.False(t, expired.Usable(now))

	noExpiry := Coupon{Code: "EVERGREEN"}
	assert.True(t, noExpiry.Usable(now))

	usedUp := Coupon{Code: "GONE", UsageLimit: 10, UsageCount: 10}
	assert.False(t, usedUp.Usable(now))

	underLimit := Coupon{Code: "LEFT", UsageLimit: 10, UsageCount: 9}
	assert.True(t, underLimit.Usable(now))

	unlimited := Coupon{Code: "FREE", UsageLimit: 0, UsageCount: 10000}
	assert.True(t, unlimited.Usable(now))
}

func TestCoupon_DiscountOn(t *testing.T) {
	subtotal := decimal.RequireFromString("500")

	percent := Coupon{DiscountType: DiscountPercent, Amount: decimal.RequireFromString("10")}
	assert.Equal(t, "50.00", percent.DiscountOn(subtotal).StringFixed(2))

	fixed := Coupon{DiscountType: DiscountFixedCart, Amount: decimal.RequireFromString("20")}
	assert.Equal(t, "20.00", fixed.DiscountOn(subtotal).StringFixed(2))

	// fixed discount never exceeds the subtotal
	bigFixed := Coupon{DiscountType: DiscountFixedCart, Amount: decimal.RequireFromString("900")}
	assert.True(t, bigFixed.DiscountOn(subtotal).Equal(subtotal))

	// below minimum spend there is no discount
	minSpend := Coupon{
		DiscountType: DiscountPercent,
		Amount:       decimal.RequireFromString("10"),
		MinimumSpend: decimal.RequireFromString("501"),
	}
	assert.True(t, minSpend.DiscountOn(subtotal).IsZero())
}

func TestProduct_EffectivePrice(t *testing.T) {
	onSale := Product{
		RegularPrice: decimal.RequireFromString("150"),
		SalePrice:    decimal.RequireFromString("120"),
	}
	assert.Equal(t, "120", onSale.EffectivePrice().String())

	regular := Product{RegularPrice: decimal.RequireFromString("150")}
	assert.Equal(t, "150", regular.EffectivePrice().String())
}

func TestCart_TotalsEmpty(t *testing.T) {
	var c Cart
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.TotalPrice().IsZero())
}
