// Package checkout is the write side of the storefront: order
// placement, coupon application and payment submission. Unlike catalog
// reads, failures here propagate so the caller can show the user why
// the action did not happen.
package checkout

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
	"github.com/shopspring/decimal"
)

// Gateway is the write surface of the commerce API.
type Gateway interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error)
	FindCoupon(ctx context.Context, code string) (*domain.Coupon, error)
	ApplyCoupon(ctx context.Context, code string) ([]byte, error)
	SubmitPayment(ctx context.Context, fields url.Values) ([]byte, error)
}

// CartAccess is what checkout needs from the cart store.
type CartAccess interface {
	Get(sessionID string) domain.Cart
	Clear(sessionID string)
}

type Service struct {
	gateway Gateway
	carts   CartAccess
	now     func() time.Time
}

func NewService(gateway Gateway, carts CartAccess) *Service {
	return &Service{
		gateway: gateway,
		carts:   carts,
		now:     time.Now,
	}
}

// PlaceOrderRequest carries what the checkout form collects.
type PlaceOrderRequest struct {
	CustomerID         int64
	Billing            domain.Address
	Shipping           domain.Address
	PaymentMethod      string
	PaymentMethodTitle string
	CouponCode         string
}

// PlaceOrder builds an order from the session's cart and submits it.
// The cart is cleared only after the remote accepts the order.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, req PlaceOrderRequest) (*domain.Order, error) {
	cart := s.carts.Get(sessionID)
	if len(cart.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	lineItems := make([]domain.OrderItem, 0, len(cart.Lines))
	for i := range cart.Lines {
		lineItems = append(lineItems, domain.OrderItem{
			ProductID: cart.Lines[i].Product.ID,
			Quantity:  cart.Lines[i].Quantity,
		})
	}

	orderReq := domain.OrderRequest{
		PaymentMethod:      req.PaymentMethod,
		PaymentMethodTitle: req.PaymentMethodTitle,
		CustomerID:         req.CustomerID,
		Billing:            req.Billing,
		Shipping:           req.Shipping,
		LineItems:          lineItems,
	}

	if req.CouponCode != "" {
		if _, err := s.validateCoupon(ctx, req.CouponCode); err != nil {
			return nil, err
		}
		orderReq.CouponLines = []domain.CouponLine{{Code: req.CouponCode}}
	}

	order, err := s.gateway.CreateOrder(ctx, orderReq)
	if err != nil {
		return nil, fmt.Errorf("create order failed: %w", err)
	}

	s.carts.Clear(sessionID)
	return order, nil
}

// CouponResult reports what applying a coupon does to the session's
// cart total. Amounts round to two decimals at this presentation edge.
type CouponResult struct {
	Coupon   domain.Coupon   `json:"coupon"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// ApplyCoupon validates the code against the coupons read, computes the
// discount on the current cart, and replays the storefront's legacy
// apply action so the remote session agrees with ours. Validation
// failures and remote failures both propagate.
func (s *Service) ApplyCoupon(ctx context.Context, sessionID, code string) (*CouponResult, error) {
	coupon, err := s.validateCoupon(ctx, code)
	if err != nil {
		return nil, err
	}

	cart := s.carts.Get(sessionID)
	subtotal := cart.TotalPrice()
	discount := coupon.DiscountOn(subtotal)
	if discount.IsZero() && coupon.MinimumSpend.IsPositive() && subtotal.LessThan(coupon.MinimumSpend) {
		return nil, fmt.Errorf("%w: minimum spend %s not met", ErrCouponNotApplicable, coupon.MinimumSpend)
	}

	if _, err := s.gateway.ApplyCoupon(ctx, code); err != nil {
		return nil, fmt.Errorf("apply coupon failed: %w", err)
	}

	return &CouponResult{
		Coupon:   *coupon,
		Subtotal: subtotal.Round(2),
		Discount: discount.Round(2),
		Total:    subtotal.Sub(discount).Round(2),
	}, nil
}

func (s *Service) validateCoupon(ctx context.Context, code string) (*domain.Coupon, error) {
	coupon, err := s.gateway.FindCoupon(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("coupon lookup failed: %w", err)
	}
	if coupon == nil {
		return nil, ErrCouponInvalid
	}
	if !coupon.Usable(s.now()) {
		return nil, ErrCouponExpired
	}
	return coupon, nil
}

// SubmitPayment proxies the checkout form to the storefront's payment
// action and returns the remote response verbatim.
func (s *Service) SubmitPayment(ctx context.Context, fields url.Values) ([]byte, error) {
	data, err := s.gateway.SubmitPayment(ctx, fields)
	if err != nil {
		log.Printf("payment submission failed: %v", err)
		return nil, fmt.Errorf("payment failed: %w", err)
	}
	return data, nil
}
