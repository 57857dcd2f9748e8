package board

import (
	"context"
	"sync"
	"time"

	"pizzapos-backend/internal/domain"
)

// Cache keeps the latest order snapshot from the sync layer so board
// reads never wait on a backend. It follows the store subscription,
// which already handles offline fallback and re-subscribe on toggle.
type Cache struct {
	mu     sync.RWMutex
	orders []domain.Order
}

func NewCache() *Cache {
	return &Cache{}
}

// Follow consumes order snapshots until the context ends. Runs in its
// own goroutine from main.
func (c *Cache) Follow(ctx context.Context, sub <-chan []domain.Order) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-sub:
			if !ok {
				return
			}
			c.mu.Lock()
			c.orders = snap
			c.mu.Unlock()
		}
	}
}

// Set replaces the snapshot directly; used by tests and by callers
// that already hold a fresh list.
func (c *Cache) Set(orders []domain.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders = orders
}

func (c *Cache) Orders() []domain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

func (c *Cache) Columns(now time.Time) Columns {
	return Group(c.Orders(), now)
}
