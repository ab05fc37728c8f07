package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/events"
	"storefront/internal/models"
	"storefront/internal/repo"
)

type OrderService struct {
	Store *repo.Store
	Bus   *events.Bus
}

// PlaceOrder converts a cart into an order. The whole procedure runs in one
// transaction: either the order and all its lines exist and the cart is gone,
// or nothing changed. The cart row is locked up front so a second checkout of
// the same cart waits and then fails on "cart not found".
func (svc *OrderService) PlaceOrder(ctx context.Context, userID uint, cartID uuid.UUID) (*models.Order, error) {
	if cartID == uuid.Nil {
		return nil, fmt.Errorf("%w: cart_id is required", ErrValidation)
	}

	var (
		order models.Order
		total decimal.Decimal
		count int
	)

	txErr := svc.Store.Tx(ctx, func(tx *repo.Store) error {
		cart, err := tx.GetCartForUpdate(ctx, cartID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: no cart with the given id was found", ErrNotFound)
		}
		if err != nil {
			return err
		}

		items, err := tx.GetCartItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: the cart is empty", ErrValidation)
		}

		customer, err := tx.GetCustomerByUserID(ctx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: customer profile", ErrNotFound)
		}
		if err != nil {
			return err
		}

		order = models.Order{
			CustomerID:    customer.ID,
			PaymentStatus: models.PaymentStatusPending,
		}
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		total = decimal.Zero
		for _, item := range items {
			// Snapshot the price now; the line never follows later
			// product price changes.
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				UnitPrice: item.Product.UnitPrice,
				Quantity:  item.Quantity,
			})
			total = total.Add(item.Product.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		if err := tx.CreateOrderItems(ctx, orderItems); err != nil {
			return err
		}
		count = len(orderItems)

		return tx.DeleteCart(ctx, cart.ID)
	})
	if txErr != nil {
		return nil, txErr
	}

	// After commit only. Listener failures are logged inside the bus and
	// never surface here.
	svc.Bus.PublishOrderCreated(ctx, events.OrderCreated{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      total,
		ItemCount:  count,
	})

	return svc.Store.GetOrder(ctx, order.ID)
}

// ListOrders returns every order for admins and only the caller's own orders
// for regular customers.
func (svc *OrderService) ListOrders(ctx context.Context, userID uint, role string, offset, limit int) ([]models.Order, error) {
	if role == models.RoleAdmin {
		return svc.Store.ListOrders(ctx, offset, limit)
	}
	customer, err := svc.Store.GetCustomerByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: customer profile", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return svc.Store.ListOrdersByCustomer(ctx, customer.ID, offset, limit)
}

func (svc *OrderService) GetOrder(ctx context.Context, userID uint, role string, id uint) (*models.Order, error) {
	order, err := svc.Store.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if role != models.RoleAdmin {
		customer, err := svc.Store.GetCustomerByUserID(ctx, userID)
		if err != nil || customer.ID != order.CustomerID {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
	}
	return order, nil
}

// UpdatePaymentStatus is the only mutation allowed on a placed order.
func (svc *OrderService) UpdatePaymentStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusComplete, models.PaymentStatusFailed:
	default:
		return nil, fmt.Errorf("%w: invalid payment_status %q", ErrValidation, status)
	}

	if _, err := svc.Store.GetOrder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		return nil, err
	}
	if err := svc.Store.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return svc.Store.GetOrder(ctx, id)
}

func (svc *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	if _, err := svc.Store.GetOrder(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order", ErrNotFound)
		}
		return err
	}
	return svc.Store.DeleteOrder(ctx, id)
}
