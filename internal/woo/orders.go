package woo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
)

// wireOrder carries the fields whose wire format differs from the
// domain record; everything else round-trips through the same tags.
type wireOrder struct {
	ID                 int64              `json:"id"`
	Number             string             `json:"number"`
	Status             string             `json:"status"`
	Currency           string             `json:"currency"`
	Total              string             `json:"total"`
	ShippingTotal      string             `json:"shipping_total"`
	DiscountTotal      string             `json:"discount_total"`
	PaymentMethodTitle string             `json:"payment_method_title"`
	CustomerID         int64              `json:"customer_id"`
	Billing            domain.Address     `json:"billing"`
	LineItems          []domain.OrderItem `json:"line_items"`
	DateCreated        wooTime            `json:"date_created"`
}

func (w *wireOrder) toDomain() domain.Order {
	return domain.Order{
		ID:                 w.ID,
		Number:             w.Number,
		Status:             w.Status,
		Currency:           w.Currency,
		Total:              w.Total,
		ShippingTotal:      w.ShippingTotal,
		DiscountTotal:      w.DiscountTotal,
		PaymentMethodTitle: w.PaymentMethodTitle,
		CustomerID:         w.CustomerID,
		Billing:            w.Billing,
		LineItems:          w.LineItems,
		DateCreated:        w.DateCreated.Time,
	}
}

// CreateOrder submits a new order. Failures propagate: the caller owns
// user-facing error messaging.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (*domain.Order, error) {
	data, err := c.postJSON(ctx, "/orders", req)
	if err != nil {
		return nil, err
	}

	var wire wireOrder
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal order failed: %w", err)
	}
	order := wire.toDomain()
	return &order, nil
}

// ListOrders fetches the orders placed by one customer, newest first.
func (c *Client) ListOrders(ctx context.Context, customerID int64, page, perPage int) ([]domain.Order, error) {
	query := pageQuery(url.Values{}, page, perPage)
	query.Set("customer", strconv.FormatInt(customerID, 10))

	data, err := c.get(ctx, "/orders", query)
	if err != nil {
		return nil, err
	}

	var wire []wireOrder
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal orders failed: %w", err)
	}

	orders := make([]domain.Order, 0, len(wire))
	for i := range wire {
		orders = append(orders, wire[i].toDomain())
	}
	return orders, nil
}
