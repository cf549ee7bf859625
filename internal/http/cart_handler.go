package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
)

// CartStore is the session cart surface the handlers mutate.
type CartStore interface {
	AddItem(sessionID string, product domain.Product, quantity int)
	UpdateQuantity(sessionID string, productID int64, quantity int)
	RemoveItem(sessionID string, productID int64)
	Get(sessionID string) domain.Cart
	Clear(sessionID string)
}

type CartHandler struct {
	carts   CartStore
	catalog CatalogReader
	timeout time.Duration
}

func NewCartHandler(carts CartStore, catalog CatalogReader, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: catalog,
		timeout: timeout,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

// CartResponse renders the cart with its derived totals; the price is
// rounded to two decimals here, at the presentation edge.
type CartResponse struct {
	Cart       domain.Cart `json:"cart"`
	TotalItems int         `json:"total_items"`
	TotalPrice string      `json:"total_price"`
}

func (h *CartHandler) respondCart(w http.ResponseWriter, status int, cart domain.Cart) {
	respondJSON(w, status, CartResponse{
		Cart:       cart,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice().StringFixed(2),
	})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}
	h.respondCart(w, http.StatusOK, h.carts.Get(sessionID))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	// The store does not gate on stock; that check belongs here.
	product := h.catalog.Product(ctx, req.ProductID)
	if product == nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if !product.InStock() {
		respondError(w, http.StatusConflict, "out_of_stock", "product is out of stock")
		return
	}

	h.carts.AddItem(sessionID, *product, req.Quantity)
	h.respondCart(w, http.StatusCreated, h.carts.Get(sessionID))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	productID, ok := parseID(w, r, "product_id")
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	// Quantity zero removes the line.
	h.carts.UpdateQuantity(sessionID, productID, req.Quantity)
	h.respondCart(w, http.StatusOK, h.carts.Get(sessionID))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	productID, ok := parseID(w, r, "product_id")
	if !ok {
		return
	}

	h.carts.RemoveItem(sessionID, productID)
	h.respondCart(w, http.StatusOK, h.carts.Get(sessionID))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	h.carts.Clear(sessionID)
	h.respondCart(w, http.StatusOK, h.carts.Get(sessionID))
}
