// Package catalog is the read side of the storefront: it pulls data
// through the remote gateways and applies the degrade-to-empty policy,
// so pages render "no results" instead of error banners when the remote
// is down.
package catalog

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/woo"
	"golang.org/x/sync/singleflight"
)

// DefaultMemoTTL bounds how long a fetched page is reused before the
// next render refetches it.
const DefaultMemoTTL = 30 * time.Second

// Gateway is what the catalog needs from the commerce API.
// Consumers define this interface, not the HTTP client.
type Gateway interface {
	ListProducts(ctx context.Context, q woo.ProductQuery) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListCategories(ctx context.Context, page, perPage int) ([]domain.Category, error)
	ListCoupons(ctx context.Context, page, perPage int) ([]domain.Coupon, error)
	ListOrders(ctx context.Context, customerID int64, page, perPage int) ([]domain.Order, error)
}

// ContentGateway is what the catalog needs from the content API.
type ContentGateway interface {
	ListPosts(ctx context.Context, page, perPage int) ([]domain.BlogPost, error)
	GetPost(ctx context.Context, id int64) (*domain.BlogPost, error)
	AllPosts(ctx context.Context, perPage int) ([]domain.BlogPost, error)
}

type memoEntry struct {
	value   interface{}
	expires time.Time
}

// Service memoizes reads for a short window, collapses concurrent
// fetches for the same key, and keeps last-request-wins ordering: a
// fetch that resolves after a newer request for the same key has
// already stored its result is discarded.
type Service struct {
	gateway Gateway
	content ContentGateway
	sfg     singleflight.Group
	ttl     time.Duration
	now     func() time.Time

	mu       sync.Mutex
	memo     map[string]memoEntry
	issued   map[string]uint64 // last generation handed out per key
	resolved map[string]uint64 // last generation stored per key
}

func NewService(gateway Gateway, content ContentGateway) *Service {
	return &Service{
		gateway:  gateway,
		content:  content,
		ttl:      DefaultMemoTTL,
		now:      time.Now,
		memo:     make(map[string]memoEntry),
		issued:   make(map[string]uint64),
		resolved: make(map[string]uint64),
	}
}

// begin returns the memoized value for key if fresh, otherwise a new
// request generation for it.
func (s *Service) begin(key string) (interface{}, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.memo[key]; ok && s.now().Before(e.expires) {
		return e.value, 0, true
	}
	s.issued[key]++
	return nil, s.issued[key], false
}

// finish stores the fetched value unless a newer generation already
// resolved for the key.
func (s *Service) finish(key string, gen uint64, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.resolved[key] {
		return // stale response, a later request already won
	}
	s.resolved[key] = gen
	s.memo[key] = memoEntry{value: value, expires: s.now().Add(s.ttl)}
}

// fetch runs one read through memoization, singleflight and the
// degrade-to-empty policy. On any failure it logs and returns the zero
// value of T.
func fetch[T any](s *Service, ctx context.Context, key string, fn func(context.Context) (T, error)) T {
	memoized, gen, ok := s.begin(key)
	if ok {
		return memoized.(T)
	}

	v, err, _ := s.sfg.Do(key, func() (interface{}, error) {
		return fn(ctx)
	})
	if err != nil {
		log.Printf("catalog fetch %s failed: %v", key, err)
		var zero T
		return zero
	}

	s.finish(key, gen, v)
	return v.(T)
}

// Products lists published products, optionally narrowed to a category.
// Empty on failure.
func (s *Service) Products(ctx context.Context, categoryID int64) []domain.Product {
	key := "products"
	if categoryID > 0 {
		key = "products:category:" + strconv.FormatInt(categoryID, 10)
	}
	products := fetch(s, ctx, key, func(ctx context.Context) ([]domain.Product, error) {
		return s.gateway.ListProducts(ctx, woo.ProductQuery{CategoryID: categoryID})
	})
	if products == nil {
		return []domain.Product{}
	}
	return products
}

// Product returns one product by id, nil when missing or on failure.
func (s *Service) Product(ctx context.Context, id int64) *domain.Product {
	return fetch(s, ctx, "product:"+strconv.FormatInt(id, 10),
		func(ctx context.Context) (*domain.Product, error) {
			return s.gateway.GetProduct(ctx, id)
		})
}

// Categories lists non-empty categories. Empty on failure.
func (s *Service) Categories(ctx context.Context) []domain.Category {
	categories := fetch(s, ctx, "categories", func(ctx context.Context) ([]domain.Category, error) {
		return s.gateway.ListCategories(ctx, 0, 0)
	})
	if categories == nil {
		return []domain.Category{}
	}
	return categories
}

// Coupons lists coupons that are not expired and under their usage
// limit. Empty on failure.
func (s *Service) Coupons(ctx context.Context) []domain.Coupon {
	coupons := fetch(s, ctx, "coupons", func(ctx context.Context) ([]domain.Coupon, error) {
		all, err := s.gateway.ListCoupons(ctx, 0, 0)
		if err != nil {
			return nil, err
		}
		now := s.now()
		usable := make([]domain.Coupon, 0, len(all))
		for i := range all {
			if all[i].Usable(now) {
				usable = append(usable, all[i])
			}
		}
		return usable, nil
	})
	if coupons == nil {
		return []domain.Coupon{}
	}
	return coupons
}

// Posts lists the blog, every page accumulated. Empty on failure.
func (s *Service) Posts(ctx context.Context) []domain.BlogPost {
	posts := fetch(s, ctx, "posts", func(ctx context.Context) ([]domain.BlogPost, error) {
		return s.content.AllPosts(ctx, 0)
	})
	if posts == nil {
		return []domain.BlogPost{}
	}
	return posts
}

// Post returns one post by id, nil when missing or on failure.
func (s *Service) Post(ctx context.Context, id int64) *domain.BlogPost {
	return fetch(s, ctx, "post:"+strconv.FormatInt(id, 10),
		func(ctx context.Context) (*domain.BlogPost, error) {
			return s.content.GetPost(ctx, id)
		})
}

// Orders lists a customer's orders. Per-customer, so not memoized, but
// the same degrade-to-empty policy applies.
func (s *Service) Orders(ctx context.Context, customerID int64) []domain.Order {
	orders, err := s.gateway.ListOrders(ctx, customerID, 0, 0)
	if err != nil {
		log.Printf("catalog fetch orders:%d failed: %v", customerID, err)
		return []domain.Order{}
	}
	return orders
}
