package cart

import (
	"sync"
	"time"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// SessionTTL is how long an untouched cart survives before the
	// background sweep drops it.
	SessionTTL = 24 * time.Hour

	// SweepInterval is how often the background sweep runs.
	SweepInterval = 10 * time.Minute
)

// Store holds the carts for all active browsing sessions in memory.
// Each operation takes the store lock once, so mutations never
// interleave mid-operation. Nothing is persisted: a cart lives for the
// session and is swept after SessionTTL of inactivity.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart // sessionID -> cart

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

// NewStore creates a session cart store and starts the TTL sweep.
func NewStore() *Store {
	s := &Store{
		carts:     make(map[string]*domain.Cart),
		stopSweep: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.sweepLoop()

	return s
}

func (s *Store) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.dropExpired()
		case <-s.stopSweep:
			return
		}
	}
}

func (s *Store) dropExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-SessionTTL)
	for id, c := range s.carts {
		if c.UpdatedAt.Before(cutoff) {
			delete(s.carts, id)
		}
	}
}

// AddItem adds quantity of product to the session's cart, merging into
// the existing line for the same product id when one exists. A quantity
// below 1 is a no-op; out-of-stock gating is the caller's concern.
func (s *Store) AddItem(sessionID string, product domain.Product, quantity int) {
	if quantity < 1 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cart(sessionID)
	for i := range c.Lines {
		if c.Lines[i].Product.ID == product.ID {
			c.Lines[i].Quantity += quantity
			c.UpdatedAt = time.Now()
			return
		}
	}

	c.Lines = append(c.Lines, domain.CartLine{
		Product:  product,
		Quantity: quantity,
		AddedAt:  time.Now(),
	})
	c.UpdatedAt = time.Now()
}

// UpdateQuantity sets the line's quantity to exactly quantity. A value
// of zero or less removes the line. No-op when no line exists for the
// product id.
func (s *Store) UpdateQuantity(sessionID string, productID int64, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return
	}

	for i := range c.Lines {
		if c.Lines[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = quantity
		}
		c.UpdatedAt = time.Now()
		return
	}
}

// RemoveItem deletes the line for the product id if present.
func (s *Store) RemoveItem(sessionID string, productID int64) {
	s.UpdateQuantity(sessionID, productID, 0)
}

// TotalItems returns the sum of line quantities, zero for a missing or
// empty cart.
func (s *Store) TotalItems(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return 0
	}
	return c.TotalItems()
}

// TotalPrice returns the sum of effective price times quantity across
// all lines, zero for a missing or empty cart.
func (s *Store) TotalPrice(sessionID string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return decimal.Zero
	}
	return c.TotalPrice()
}

// Get returns a snapshot copy of the session's cart. Mutating the
// returned value does not affect the store.
func (s *Store) Get(sessionID string) domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return domain.Cart{SessionID: sessionID}
	}

	snapshot := *c
	snapshot.Lines = make([]domain.CartLine, len(c.Lines))
	copy(snapshot.Lines, c.Lines)
	return snapshot
}

// Clear drops the session's cart entirely.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// cart returns the session's cart, creating it on first use. Caller
// must hold the write lock.
func (s *Store) cart(sessionID string) *domain.Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		now := time.Now()
		c = &domain.Cart{
			SessionID: sessionID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.carts[sessionID] = c
	}
	return c
}

// Close stops the background sweep and waits for it to finish.
func (s *Store) Close() error {
	close(s.stopSweep)
	s.wg.Wait()
	return nil
}
