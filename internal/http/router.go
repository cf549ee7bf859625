package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/profile"
)

// RouterConfig bundles the services the API serves.
type RouterConfig struct {
	Catalog        CatalogReader
	Carts          CartStore
	Checkout       CheckoutService
	Profiles       profile.Store
	RequestTimeout time.Duration
}

// NewRouter assembles the storefront API.
func NewRouter(cfg RouterConfig) chi.Router {
	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.RequestTimeout)
	cartHandler := NewCartHandler(cfg.Carts, cfg.Catalog, cfg.RequestTimeout)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, cfg.RequestTimeout)
	profileHandler := NewProfileHandler(cfg.Profiles, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/posts", catalogHandler.ListPosts)
		r.Get("/posts/{id}", catalogHandler.GetPost)
		r.Get("/orders", catalogHandler.ListOrders)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Get("/coupons", catalogHandler.ListCoupons)
		r.Post("/coupons/apply", checkoutHandler.ApplyCoupon)
		r.Post("/checkout", checkoutHandler.PlaceOrder)
		r.Post("/payment", checkoutHandler.SubmitPayment)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", profileHandler.Get)
			r.Put("/", profileHandler.Put)
			r.Delete("/", profileHandler.Delete)
		})
	})

	return r
}
