package domain

import "github.com/shopspring/decimal"

// Stock status values as WooCommerce reports them.
const (
	StockInStock    = "instock"
	StockOutOfStock = "outofstock"
)

type Image struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type CategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Attribute struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// Product is a read-only snapshot of a remote catalog item. The
// authoritative copy lives in WooCommerce; prices arrive as decimal
// strings and are parsed at the gateway boundary.
type Product struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	SKU              string          `json:"sku"`
	Description      string          `json:"description"`
	ShortDescription string          `json:"short_description"`
	RegularPrice     decimal.Decimal `json:"regular_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	OnSale           bool            `json:"on_sale"`
	StockStatus      string          `json:"stock_status"`
	StockQuantity    int             `json:"stock_quantity"`
	Images           []Image         `json:"images"`
	Categories       []CategoryRef   `json:"categories"`
	Attributes       []Attribute     `json:"attributes"`
}

// EffectivePrice returns the sale price when one is set and positive,
// otherwise the regular price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.IsPositive() {
		return p.SalePrice
	}
	return p.RegularPrice
}

// InStock reports whether the product can be added to a cart.
func (p *Product) InStock() bool {
	return p.StockStatus == StockInStock
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Count       int    `json:"count"`
	Image       *Image `json:"image,omitempty"`
}
