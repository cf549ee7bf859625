package cart

import (
	"sync"
	"testing"
	"time"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore()
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func product(id int64, regular string) domain.Product {
	return domain.Product{
		ID:           id,
		Name:         "product",
		RegularPrice: decimal.RequireFromString(regular),
		StockStatus:  domain.StockInStock,
	}
}

func saleProduct(id int64, regular, sale string) domain.Product {
	p := product(id, regular)
	p.SalePrice = decimal.RequireFromString(sale)
	p.OnSale = true
	return p
}

func TestAddItem_NewLine(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "100"), 2)

	assert.Equal(t, 2, s.TotalItems("s1"))
	assert.True(t, s.TotalPrice("s1").Equal(decimal.RequireFromString("200")))
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "100"), 2)
	s.AddItem("s1", product(1, "100"), 3)

	cart := s.Get("s1")
	require.Len(t, cart.Lines, 1, "same product id must stay one line")
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.True(t, s.TotalPrice("s1").Equal(decimal.RequireFromString("500")))
}

func TestAddItem_NonPositiveQuantityIsNoOp(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "100"), 0)
	s.AddItem("s1", product(1, "100"), -3)

	assert.Equal(t, 0, s.TotalItems("s1"))
	assert.Empty(t, s.Get("s1").Lines)
}

func TestAddItem_PreservesInsertionOrder(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(3, "10"), 1)
	s.AddItem("s1", product(1, "10"), 1)
	s.AddItem("s1", product(2, "10"), 1)
	s.AddItem("s1", product(1, "10"), 1) // merge, order unchanged

	cart := s.Get("s1")
	require.Len(t, cart.Lines, 3)
	assert.Equal(t, int64(3), cart.Lines[0].Product.ID)
	assert.Equal(t, int64(1), cart.Lines[1].Product.ID)
	assert.Equal(t, int64(2), cart.Lines[2].Product.ID)
}

func TestUpdateQuantity_SetsAbsolute(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "100"), 5)
	s.UpdateQuantity("s1", 1, 1)

	assert.Equal(t, 1, s.TotalItems("s1"))
	assert.True(t, s.TotalPrice("s1").Equal(decimal.RequireFromString("100")))
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "100"), 2)
	s.AddItem("s2", product(1, "100"), 2)

	s.UpdateQuantity("s1", 1, 0)
	s.RemoveItem("s2", 1)

	// update-to-zero and remove leave identical state
	assert.Empty(t, s.Get("s1").Lines)
	assert.Empty(t, s.Get("s2").Lines)
	assert.Equal(t, 0, s.TotalItems("s1"))
	assert.Equal(t, 0, s.TotalItems("s2"))
}

func TestUpdateQuantity_UnknownProductIsNoOp(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "100"), 2)
	s.UpdateQuantity("s1", 42, 7)
	s.UpdateQuantity("missing-session", 1, 7)

	cart := s.Get("s1")
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
}

func TestRemoveItem_UnknownProductIsNoOp(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "100"), 2)
	s.RemoveItem("s1", 42)

	assert.Equal(t, 2, s.TotalItems("s1"))
}

func TestTotals_EmptyCart(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, 0, s.TotalItems("nobody"))
	assert.True(t, s.TotalPrice("nobody").IsZero())
}

func TestTotalPrice_AddRemoveRoundTrip(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "249.50"), 1)
	before := s.TotalPrice("s1")

	s.AddItem("s1", product(2, "99.99"), 3)
	s.RemoveItem("s1", 2)

	assert.True(t, s.TotalPrice("s1").Equal(before),
		"adding then removing the same product must restore the prior total")
}

func TestTotalPrice_PrefersSalePrice(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", saleProduct(1, "150", "120"), 1)

	assert.True(t, s.TotalPrice("s1").Equal(decimal.RequireFromString("120")))
}

func TestTotalPrice_ScenarioFromCatalogPage(t *testing.T) {
	s := newTestStore(t)
	p := product(1, "100")

	s.AddItem("s1", p, 2)
	assert.Equal(t, 2, s.TotalItems("s1"))
	assert.True(t, s.TotalPrice("s1").Equal(decimal.RequireFromString("200")))

	s.AddItem("s1", p, 3)
	require.Len(t, s.Get("s1").Lines, 1)
	assert.Equal(t, 5, s.Get("s1").Lines[0].Quantity)
	assert.True(t, s.TotalPrice("s1").Equal(decimal.RequireFromString("500")))

	s.UpdateQuantity("s1", 1, 1)
	assert.True(t, s.TotalPrice("s1").Equal(decimal.RequireFromString("100")))

	s.RemoveItem("s1", 1)
	assert.Empty(t, s.Get("s1").Lines)
	assert.Equal(t, 0, s.TotalItems("s1"))
}

func TestTotalPrice_NoFloatDrift(t *testing.T) {
	s := newTestStore(t)

	// 0.1 is not representable in binary floating point; 100 lines of
	// it would drift under float64 accumulation.
	for i := int64(1); i <= 100; i++ {
		s.AddItem("s1", product(i, "0.10"), 1)
	}

	assert.Equal(t, "10.00", s.TotalPrice("s1").StringFixed(2))
}

func TestGet_ReturnsSnapshot(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "100"), 2)
	snapshot := s.Get("s1")
	snapshot.Lines[0].Quantity = 99

	assert.Equal(t, 2, s.Get("s1").Lines[0].Quantity)
}

func TestClear_DropsCart(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "100"), 2)
	s.Clear("s1")

	assert.Equal(t, 0, s.TotalItems("s1"))
	assert.Empty(t, s.Get("s1").Lines)
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("s1", product(1, "100"), 1)
	s.AddItem("s2", product(1, "100"), 5)

	assert.Equal(t, 1, s.TotalItems("s1"))
	assert.Equal(t, 5, s.TotalItems("s2"))
}

func TestStore_ConcurrentMutations(t *testing.T) {
	s := newTestStore(t)
	p := product(1, "10")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem("s1", p, 1)
		}()
	}
	wg.Wait()

	cart := s.Get("s1")
	require.Len(t, cart.Lines, 1, "concurrent adds must not duplicate the line")
	assert.Equal(t, 50, cart.Lines[0].Quantity)
}

func TestSweep_DropsExpiredSessions(t *testing.T) {
	s := newTestStore(t)

	s.AddItem("stale", product(1, "100"), 1)
	s.AddItem("fresh", product(1, "100"), 1)

	s.mu.Lock()
	s.carts["stale"].UpdatedAt = time.Now().Add(-SessionTTL - time.Minute)
	s.mu.Unlock()

	s.dropExpired()

	assert.Equal(t, 0, s.TotalItems("stale"))
	assert.Equal(t, 1, s.TotalItems("fresh"))
}
