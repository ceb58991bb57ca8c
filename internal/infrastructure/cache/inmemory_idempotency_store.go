package cache

import (
	"context"
	"sync"
	"time"

	"github.com/glossary/backend/internal/domain/shared"
)

// processedOrder is a stored order ID with its expiry
type processedOrder struct {
	expiresAt time.Time
}

// InMemoryIdempotencyStore keeps the processed-order set in a map. Fine for
// single-instance deployments and tests; replayed webhooks hitting another
// instance will not be deduplicated here.
type InMemoryIdempotencyStore struct {
	mu        sync.RWMutex
	orders    map[string]processedOrder
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates the store and starts the expiry sweep
func NewInMemoryIdempotencyStore() *InMemoryIdempotencyStore {
	store := &InMemoryIdempotencyStore{
		orders:   make(map[string]processedOrder),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.sweepLoop()

	return store
}

// MarkProcessed records an order ID with a TTL. Returns false when the ID
// is already present and not yet expired.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, orderID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.orders[orderID]; ok && time.Now().Before(existing.expiresAt) {
		return false, nil
	}

	s.orders[orderID] = processedOrder{expiresAt: time.Now().Add(ttl)}
	return true, nil
}

// IsProcessed checks whether the order ID was already handled
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, orderID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing, ok := s.orders[orderID]
	if !ok || time.Now().After(existing.expiresAt) {
		return false, nil
	}
	return true, nil
}

// Close stops the sweep goroutine. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// sweepLoop periodically drops expired order IDs
func (s *InMemoryIdempotencyStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep removes expired entries
func (s *InMemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for orderID, existing := range s.orders {
		if now.After(existing.expiresAt) {
			delete(s.orders, orderID)
		}
	}
}

// Size returns the number of tracked order IDs
func (s *InMemoryIdempotencyStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// Ensure InMemoryIdempotencyStore implements IdempotencyStore
var _ shared.IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
