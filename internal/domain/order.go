package domain

import "time"

// Order status values as WooCommerce reports them.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusOnHold     = "on-hold"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusFailed     = "failed"
)

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type OrderItem struct {
	ID        int64  `json:"id,omitempty"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity"`
	Total     string `json:"total,omitempty"`
}

type CouponLine struct {
	Code string `json:"code"`
}

// OrderRequest is the payload submitted to create an order.
type OrderRequest struct {
	PaymentMethod      string       `json:"payment_method"`
	PaymentMethodTitle string       `json:"payment_method_title"`
	SetPaid            bool         `json:"set_paid"`
	CustomerID         int64        `json:"customer_id,omitempty"`
	Billing            Address      `json:"billing"`
	Shipping           Address      `json:"shipping"`
	LineItems          []OrderItem  `json:"line_items"`
	CouponLines        []CouponLine `json:"coupon_lines,omitempty"`
}

// Order is the record the remote API returns after creation.
type Order struct {
	ID                 int64       `json:"id"`
	Number             string      `json:"number"`
	Status             string      `json:"status"`
	Currency           string      `json:"currency"`
	Total              string      `json:"total"`
	ShippingTotal      string      `json:"shipping_total"`
	DiscountTotal      string      `json:"discount_total"`
	PaymentMethodTitle string      `json:"payment_method_title"`
	CustomerID         int64       `json:"customer_id"`
	Billing            Address     `json:"billing"`
	LineItems          []OrderItem `json:"line_items"`
	DateCreated        time.Time   `json:"date_created"`
}
