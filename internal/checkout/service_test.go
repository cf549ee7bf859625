package checkout

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	m            sync.Mutex
	coupon       *domain.Coupon
	couponErr    error
	order        *domain.Order
	orderErr     error
	applyErr     error
	paymentBody  []byte
	paymentErr   error
	createdOrder *domain.OrderRequest
	appliedCode  string
}

func (g *mockGateway) CreateOrder(_ context.Context, req domain.OrderRequest) (*domain.Order, error) {
	g.m.Lock()
	defer g.m.Unlock()
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	g.createdOrder = &req
	return g.order, nil
}

func (g *mockGateway) FindCoupon(context.Context, string) (*domain.Coupon, error) {
	g.m.Lock()
	defer g.m.Unlock()
	if g.couponErr != nil {
		return nil, g.couponErr
	}
	return g.coupon, nil
}

func (g *mockGateway) ApplyCoupon(_ context.Context, code string) ([]byte, error) {
	g.m.Lock()
	defer g.m.Unlock()
	if g.applyErr != nil {
		return nil, g.applyErr
	}
	g.appliedCode = code
	return []byte(`{}`), nil
}

func (g *mockGateway) SubmitPayment(context.Context, url.Values) ([]byte, error) {
	g.m.Lock()
	defer g.m.Unlock()
	if g.paymentErr != nil {
		return nil, g.paymentErr
	}
	return g.paymentBody, nil
}

type mockCarts struct {
	m       sync.Mutex
	cart    domain.Cart
	cleared bool
}

func (c *mockCarts) Get(string) domain.Cart {
	c.m.Lock()
	defer c.m.Unlock()
	return c.cart
}

func (c *mockCarts) Clear(string) {
	c.m.Lock()
	defer c.m.Unlock()
	c.cleared = true
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func cartWith(lines ...domain.CartLine) domain.Cart {
	return domain.Cart{SessionID: "s1", Lines: lines}
}

func line(id int64, priceStr string, qty int) domain.CartLine {
	return domain.CartLine{
		Product:  domain.Product{ID: id, RegularPrice: price(priceStr)},
		Quantity: qty,
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	gw := &mockGateway{order: &domain.Order{ID: 42, Number: "42", Status: "processing"}}
	carts := &mockCarts{cart: cartWith(line(5, "120", 2), line(7, "80", 1))}

	sut := NewService(gw, carts)
	order, err := sut.PlaceOrder(context.Background(), "s1", PlaceOrderRequest{
		PaymentMethod: "cod",
		Billing:       domain.Address{Email: "a@b.c"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)

	require.NotNil(t, gw.createdOrder)
	require.Len(t, gw.createdOrder.LineItems, 2)
	assert.Equal(t, int64(5), gw.createdOrder.LineItems[0].ProductID)
	assert.Equal(t, 2, gw.createdOrder.LineItems[0].Quantity)

	assert.True(t, carts.cleared, "cart must clear after the remote accepts the order")
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	sut := NewService(&mockGateway{}, &mockCarts{})

	_, err := sut.PlaceOrder(context.Background(), "s1", PlaceOrderRequest{PaymentMethod: "cod"})
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_RemoteFailureKeepsCart(t *testing.T) {
	gw := &mockGateway{orderErr: fmt.Errorf("upstream 500")}
	carts := &mockCarts{cart: cartWith(line(5, "120", 2))}

	sut := NewService(gw, carts)
	_, err := sut.PlaceOrder(context.Background(), "s1", PlaceOrderRequest{PaymentMethod: "cod"})
	require.ErrorContains(t, err, "upstream 500")
	assert.False(t, carts.cleared, "a failed order must not clear the cart")
}

func TestPlaceOrder_WithCoupon(t *testing.T) {
	gw := &mockGateway{
		order:  &domain.Order{ID: 1},
		coupon: &domain.Coupon{Code: "ORGANIC10", DiscountType: domain.DiscountPercent, Amount: price("10")},
	}
	carts := &mockCarts{cart: cartWith(line(5, "120", 2))}

	sut := NewService(gw, carts)
	_, err := sut.PlaceOrder(context.Background(), "s1", PlaceOrderRequest{
		PaymentMethod: "cod",
		CouponCode:    "ORGANIC10",
	})
	require.NoError(t, err)
	require.Len(t, gw.createdOrder.CouponLines, 1)
	assert.Equal(t, "ORGANIC10", gw.createdOrder.CouponLines[0].Code)
}

func TestPlaceOrder_UnknownCoupon(t *testing.T) {
	gw := &mockGateway{order: &domain.Order{ID: 1}, coupon: nil}
	carts := &mockCarts{cart: cartWith(line(5, "120", 2))}

	sut := NewService(gw, carts)
	_, err := sut.PlaceOrder(context.Background(), "s1", PlaceOrderRequest{
		PaymentMethod: "cod",
		CouponCode:    "NOPE",
	})
	require.ErrorIs(t, err, ErrCouponInvalid)
	assert.False(t, carts.cleared)
}

func TestApplyCoupon_PercentDiscount(t *testing.T) {
	gw := &mockGateway{coupon: &domain.Coupon{
		Code:         "ORGANIC10",
		DiscountType: domain.DiscountPercent,
		Amount:       price("10"),
	}}
	carts := &mockCarts{cart: cartWith(line(5, "250", 2))} // subtotal 500

	sut := NewService(gw, carts)
	result, err := sut.ApplyCoupon(context.Background(), "s1", "ORGANIC10")
	require.NoError(t, err)

	assert.Equal(t, "500", result.Subtotal.String())
	assert.Equal(t, "50", result.Discount.String())
	assert.Equal(t, "450", result.Total.String())
	assert.Equal(t, "ORGANIC10", gw.appliedCode, "legacy apply action must be replayed")
}

func TestApplyCoupon_FixedDiscount(t *testing.T) {
	gw := &mockGateway{coupon: &domain.Coupon{
		Code:         "SEEDS20",
		DiscountType: domain.DiscountFixedCart,
		Amount:       price("20"),
	}}
	carts := &mockCarts{cart: cartWith(line(5, "100", 3))}

	sut := NewService(gw, carts)
	result, err := sut.ApplyCoupon(context.Background(), "s1", "SEEDS20")
	require.NoError(t, err)
	assert.Equal(t, "280", result.Total.String())
}

func TestApplyCoupon_Expired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	gw := &mockGateway{coupon: &domain.Coupon{Code: "OLD", DateExpires: &past}}
	carts := &mockCarts{cart: cartWith(line(5, "100", 1))}

	sut := NewService(gw, carts)
	_, err := sut.ApplyCoupon(context.Background(), "s1", "OLD")
	require.ErrorIs(t, err, ErrCouponExpired)
}

func TestApplyCoupon_MinimumSpendNotMet(t *testing.T) {
	gw := &mockGateway{coupon: &domain.Coupon{
		Code:         "BIG",
		DiscountType: domain.DiscountPercent,
		Amount:       price("10"),
		MinimumSpend: price("500"),
	}}
	carts := &mockCarts{cart: cartWith(line(5, "100", 1))}

	sut := NewService(gw, carts)
	_, err := sut.ApplyCoupon(context.Background(), "s1", "BIG")
	require.ErrorIs(t, err, ErrCouponNotApplicable)
}

func TestApplyCoupon_LookupFailurePropagates(t *testing.T) {
	gw := &mockGateway{couponErr: fmt.Errorf("remote down")}
	sut := NewService(gw, &mockCarts{cart: cartWith(line(5, "100", 1))})

	_, err := sut.ApplyCoupon(context.Background(), "s1", "ANY")
	require.ErrorContains(t, err, "remote down")
}

func TestApplyCoupon_RemoteApplyFailurePropagates(t *testing.T) {
	gw := &mockGateway{
		coupon:   &domain.Coupon{Code: "OK", DiscountType: domain.DiscountPercent, Amount: price("10")},
		applyErr: fmt.Errorf("ajax endpoint 500"),
	}
	sut := NewService(gw, &mockCarts{cart: cartWith(line(5, "100", 1))})

	_, err := sut.ApplyCoupon(context.Background(), "s1", "OK")
	require.ErrorContains(t, err, "ajax endpoint 500")
}

func TestSubmitPayment_Propagates(t *testing.T) {
	gw := &mockGateway{paymentBody: []byte(`{"result":"success"}`)}
	sut := NewService(gw, &mockCarts{})

	data, err := sut.SubmitPayment(context.Background(), url.Values{"payment_method": {"cod"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":"success"}`, string(data))

	gw.paymentErr = fmt.Errorf("declined")
	_, err = sut.SubmitPayment(context.Background(), url.Values{})
	require.ErrorContains(t, err, "payment failed")
}
