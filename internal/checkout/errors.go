package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrCouponInvalid       = errors.New("coupon code is not valid")
	ErrCouponExpired       = errors.New("coupon is expired or used up")
	ErrCouponNotApplicable = errors.New("coupon cannot be applied to this cart")
)
