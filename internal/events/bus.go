package events

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"storefront/internal/logging"
)

// OrderCreated is emitted after the checkout transaction commits.
type OrderCreated struct {
	OrderID    uint            `json:"order_id"`
	CustomerID uint            `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
	ItemCount  int             `json:"item_count"`
}

type OrderCreatedListener func(ctx context.Context, ev OrderCreated) error

// Bus fans OrderCreated events out to registered listeners. Delivery is
// best-effort: a listener error or panic is logged and swallowed, it never
// reaches the publisher. Order creation must not fail because a notification
// hook misbehaved.
type Bus struct {
	mu        sync.RWMutex
	listeners []OrderCreatedListener
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) SubscribeOrderCreated(fn OrderCreatedListener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

func (b *Bus) PublishOrderCreated(ctx context.Context, ev OrderCreated) {
	b.mu.RLock()
	listeners := make([]OrderCreatedListener, len(b.listeners))
	copy(listeners, b.listeners)
	b.mu.RUnlock()

	l := logging.FromContext(ctx)
	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					l.Error("order_created_listener_panic", "order_id", ev.OrderID, "panic", r)
				}
			}()
			if err := fn(ctx, ev); err != nil {
				l.Error("order_created_listener_error", "order_id", ev.OrderID, "error", err)
			}
		}()
	}
}
