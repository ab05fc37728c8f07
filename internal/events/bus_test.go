package events

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestPublishOrderCreated(t *testing.T) {
	bus := NewBus()

	var got OrderCreated
	bus.SubscribeOrderCreated(func(ctx context.Context, ev OrderCreated) error {
		got = ev
		return nil
	})

	ev := OrderCreated{OrderID: 7, CustomerID: 3, Total: decimal.NewFromInt(42), ItemCount: 2}
	bus.PublishOrderCreated(context.Background(), ev)

	require.Equal(t, uint(7), got.OrderID)
	require.Equal(t, uint(3), got.CustomerID)
	require.Equal(t, 2, got.ItemCount)
}

func TestListenerErrorIsSwallowed(t *testing.T) {
	bus := NewBus()

	var called bool
	bus.SubscribeOrderCreated(func(ctx context.Context, ev OrderCreated) error {
		return errors.New("smtp down")
	})
	bus.SubscribeOrderCreated(func(ctx context.Context, ev OrderCreated) error {
		called = true
		return nil
	})

	require.NotPanics(t, func() {
		bus.PublishOrderCreated(context.Background(), OrderCreated{OrderID: 1})
	})
	require.True(t, called, "later listeners still run after one fails")
}

func TestListenerPanicIsSwallowed(t *testing.T) {
	bus := NewBus()

	bus.SubscribeOrderCreated(func(ctx context.Context, ev OrderCreated) error {
		panic("boom")
	})

	require.NotPanics(t, func() {
		bus.PublishOrderCreated(context.Background(), OrderCreated{OrderID: 1})
	})
}
