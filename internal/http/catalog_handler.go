package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
)

// CatalogReader is the read surface the handlers render from. Failed
// reads surface as empty results, never as errors.
type CatalogReader interface {
	Products(ctx context.Context, categoryID int64) []domain.Product
	Product(ctx context.Context, id int64) *domain.Product
	Categories(ctx context.Context) []domain.Category
	Coupons(ctx context.Context) []domain.Coupon
	Posts(ctx context.Context) []domain.BlogPost
	Post(ctx context.Context, id int64) *domain.BlogPost
	Orders(ctx context.Context, customerID int64) []domain.Order
}

type CatalogHandler struct {
	catalog CatalogReader
	timeout time.Duration
}

func NewCatalogHandler(catalog CatalogReader, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var categoryID int64
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_category", "category must be a positive integer")
			return
		}
		categoryID = id
	}

	respondJSON(w, http.StatusOK, ProductsResponse{Products: h.catalog.Products(ctx, categoryID)})
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	product := h.catalog.Product(ctx, id)
	if product == nil {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, map[string][]domain.Category{
		"categories": h.catalog.Categories(ctx),
	})
}

func (h *CatalogHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, map[string][]domain.Coupon{
		"coupons": h.catalog.Coupons(ctx),
	})
}

func (h *CatalogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	respondJSON(w, http.StatusOK, map[string][]domain.BlogPost{
		"posts": h.catalog.Posts(ctx),
	})
}

func (h *CatalogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := parseID(w, r, "id")
	if !ok {
		return
	}

	post := h.catalog.Post(ctx, id)
	if post == nil {
		respondError(w, http.StatusNotFound, "not_found", "post not found")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *CatalogHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	raw := r.URL.Query().Get("customer")
	customerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || customerID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_customer", "customer must be a positive integer")
		return
	}

	respondJSON(w, http.StatusOK, map[string][]domain.Order{
		"orders": h.catalog.Orders(ctx, customerID),
	})
}

func parseID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", param+" must be a positive integer")
		return 0, false
	}
	return id, true
}
