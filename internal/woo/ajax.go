package woo

import (
	"context"
	"net/url"
)

// wc-ajax action names, fixed by the storefront theme.
const (
	actionApplyCoupon = "apply_coupon_on_click"
	actionCheckout    = "checkout"
)

// ApplyCoupon replays the storefront's coupon-apply action. This is a
// pre-REST contract: a form-encoded POST against the site root, kept
// byte-for-byte because no structured endpoint replaces it.
func (c *Client) ApplyCoupon(ctx context.Context, code string) ([]byte, error) {
	form := url.Values{}
	form.Set("wc-ajax", actionApplyCoupon)
	form.Set("coupon_code", code)
	return c.PostForm(ctx, form)
}

// SubmitPayment posts the checkout form to the storefront's payment
// action. Fields are passed through untouched; the remote validates.
func (c *Client) SubmitPayment(ctx context.Context, fields url.Values) ([]byte, error) {
	form := url.Values{}
	for k, vs := range fields {
		for _, v := range vs {
			form.Add(k, v)
		}
	}
	form.Set("wc-ajax", actionCheckout)
	return c.PostForm(ctx, form)
}
