package woo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
)

// wooTime parses the API's date fields, which omit the timezone suffix
// RFC 3339 requires.
type wooTime struct {
	time.Time
}

const wooTimeLayout = "2006-01-02T15:04:05"

func (t *wooTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		t.Time = parsed
		return nil
	}
	parsed, err := time.Parse(wooTimeLayout, s)
	if err != nil {
		return fmt.Errorf("bad date %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

type wireCoupon struct {
	ID           int64    `json:"id"`
	Code         string   `json:"code"`
	Description  string   `json:"description"`
	Amount       string   `json:"amount"`
	DiscountType string   `json:"discount_type"`
	DateExpires  *wooTime `json:"date_expires"`
	UsageCount   int      `json:"usage_count"`
	UsageLimit   *int     `json:"usage_limit"`
	MinimumSpend string   `json:"minimum_amount"`
}

func (w *wireCoupon) toDomain() (domain.Coupon, error) {
	amount, err := parsePrice(w.Amount)
	if err != nil {
		return domain.Coupon{}, fmt.Errorf("coupon %q: bad amount %q: %w", w.Code, w.Amount, err)
	}
	minimum, err := parsePrice(w.MinimumSpend)
	if err != nil {
		return domain.Coupon{}, fmt.Errorf("coupon %q: bad minimum_amount %q: %w", w.Code, w.MinimumSpend, err)
	}

	c := domain.Coupon{
		ID:           w.ID,
		Code:         w.Code,
		Description:  w.Description,
		Amount:       amount,
		DiscountType: w.DiscountType,
		UsageCount:   w.UsageCount,
		MinimumSpend: minimum,
	}
	if w.DateExpires != nil && !w.DateExpires.IsZero() {
		expires := w.DateExpires.Time
		c.DateExpires = &expires
	}
	if w.UsageLimit != nil {
		c.UsageLimit = *w.UsageLimit
	}
	return c, nil
}

// ListCoupons fetches all coupons, usable or not; filtering to usable
// ones is the catalog service's concern.
func (c *Client) ListCoupons(ctx context.Context, page, perPage int) ([]domain.Coupon, error) {
	data, err := c.get(ctx, "/coupons", pageQuery(url.Values{}, page, perPage))
	if err != nil {
		return nil, err
	}

	var wire []wireCoupon
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal coupons failed: %w", err)
	}

	coupons := make([]domain.Coupon, 0, len(wire))
	for i := range wire {
		cp, err := wire[i].toDomain()
		if err != nil {
			return nil, err
		}
		coupons = append(coupons, cp)
	}
	return coupons, nil
}

// FindCoupon looks a coupon up by its exact code, nil when unknown.
func (c *Client) FindCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	query := url.Values{}
	query.Set("code", code)

	data, err := c.get(ctx, "/coupons", query)
	if err != nil {
		return nil, err
	}

	var wire []wireCoupon
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal coupons failed: %w", err)
	}
	if len(wire) == 0 {
		return nil, nil
	}
	cp, err := wire[0].toDomain()
	if err != nil {
		return nil, err
	}
	return &cp, nil
}
