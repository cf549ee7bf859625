package woo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
	"github.com/shopspring/decimal"
)

// wireProduct mirrors the WooCommerce product payload; prices arrive as
// decimal strings (possibly empty) and are parsed here.
type wireProduct struct {
	ID               int64                `json:"id"`
	Name             string               `json:"name"`
	Slug             string               `json:"slug"`
	SKU              string               `json:"sku"`
	Description      string               `json:"description"`
	ShortDescription string               `json:"short_description"`
	RegularPrice     string               `json:"regular_price"`
	SalePrice        string               `json:"sale_price"`
	OnSale           bool                 `json:"on_sale"`
	StockStatus      string               `json:"stock_status"`
	StockQuantity    *int                 `json:"stock_quantity"`
	Images           []domain.Image       `json:"images"`
	Categories       []domain.CategoryRef `json:"categories"`
	Attributes       []domain.Attribute   `json:"attributes"`
}

func (w *wireProduct) toDomain() (domain.Product, error) {
	regular, err := parsePrice(w.RegularPrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: bad regular_price %q: %w", w.ID, w.RegularPrice, err)
	}
	sale, err := parsePrice(w.SalePrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: bad sale_price %q: %w", w.ID, w.SalePrice, err)
	}

	p := domain.Product{
		ID:               w.ID,
		Name:             w.Name,
		Slug:             w.Slug,
		SKU:              w.SKU,
		Description:      w.Description,
		ShortDescription: w.ShortDescription,
		RegularPrice:     regular,
		SalePrice:        sale,
		OnSale:           w.OnSale,
		StockStatus:      w.StockStatus,
		Images:           w.Images,
		Categories:       w.Categories,
		Attributes:       w.Attributes,
	}
	if w.StockQuantity != nil {
		p.StockQuantity = *w.StockQuantity
	}
	return p, nil
}

// parsePrice turns a WooCommerce price string into a decimal; the API
// sends "" for unset prices.
func parsePrice(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

// ProductQuery narrows a product listing.
type ProductQuery struct {
	CategoryID int64
	Page       int
	PerPage    int
}

// ListProducts fetches published products, optionally filtered by
// category.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	query := pageQuery(url.Values{}, q.Page, q.PerPage)
	query.Set("status", "publish")
	if q.CategoryID > 0 {
		query.Set("category", strconv.FormatInt(q.CategoryID, 10))
	}

	data, err := c.get(ctx, "/products", query)
	if err != nil {
		return nil, err
	}

	var wire []wireProduct
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal products failed: %w", err)
	}

	products := make([]domain.Product, 0, len(wire))
	for i := range wire {
		p, err := wire[i].toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// GetProduct fetches one product by id; ErrNotFound when the remote has
// no such product.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	data, err := c.get(ctx, "/products/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return nil, err
	}

	var wire wireProduct
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err)
	}
	p, err := wire.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCategories fetches non-empty product categories.
func (c *Client) ListCategories(ctx context.Context, page, perPage int) ([]domain.Category, error) {
	query := pageQuery(url.Values{}, page, perPage)
	query.Set("hide_empty", "true")

	data, err := c.get(ctx, "/products/categories", query)
	if err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories failed: %w", err)
	}
	return categories, nil
}
