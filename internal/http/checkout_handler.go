package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/checkout"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
)

// CheckoutService is the write surface behind the checkout routes.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, sessionID string, req checkout.PlaceOrderRequest) (*domain.Order, error)
	ApplyCoupon(ctx context.Context, sessionID, code string) (*checkout.CouponResult, error)
	SubmitPayment(ctx context.Context, fields url.Values) ([]byte, error)
}

type CheckoutHandler struct {
	service CheckoutService
	timeout time.Duration
}

func NewCheckoutHandler(service CheckoutService, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		timeout: timeout,
	}
}

type PlaceOrderRequestDTO struct {
	CustomerID         int64          `json:"customer_id,omitempty"`
	Billing            domain.Address `json:"billing"`
	Shipping           domain.Address `json:"shipping"`
	PaymentMethod      string         `json:"payment_method"`
	PaymentMethodTitle string         `json:"payment_method_title"`
	CouponCode         string         `json:"coupon_code,omitempty"`
}

type ApplyCouponRequestDTO struct {
	Code string `json:"code"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaymentMethod == "" {
		respondError(w, http.StatusBadRequest, "missing_payment_method", "payment_method is required")
		return
	}
	if req.Billing.Email == "" {
		respondError(w, http.StatusBadRequest, "missing_billing_email", "billing email is required")
		return
	}

	order, err := h.service.PlaceOrder(ctx, sessionID, checkout.PlaceOrderRequest{
		CustomerID:         req.CustomerID,
		Billing:            req.Billing,
		Shipping:           req.Shipping,
		PaymentMethod:      req.PaymentMethod,
		PaymentMethodTitle: req.PaymentMethodTitle,
		CouponCode:         req.CouponCode,
	})
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// POST /api/v1/coupons/apply
func (h *CheckoutHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req ApplyCouponRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "missing_code", "coupon code is required")
		return
	}

	result, err := h.service.ApplyCoupon(ctx, sessionID, req.Code)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// POST /api/v1/payment
// The body passes through to the storefront's form-encoded payment
// action; so does the response.
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid form body")
		return
	}

	data, err := h.service.SubmitPayment(ctx, r.PostForm)
	if err != nil {
		respondError(w, http.StatusBadGateway, "payment_failed", "payment failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
	case errors.Is(err, checkout.ErrCouponInvalid):
		respondError(w, http.StatusNotFound, "invalid_coupon", "coupon code is not valid")
	case errors.Is(err, checkout.ErrCouponExpired):
		respondError(w, http.StatusConflict, "coupon_expired", "coupon is expired or used up")
	case errors.Is(err, checkout.ErrCouponNotApplicable):
		respondError(w, http.StatusConflict, "coupon_not_applicable", err.Error())
	default:
		respondError(w, http.StatusBadGateway, "upstream_error", err.Error())
	}
}
