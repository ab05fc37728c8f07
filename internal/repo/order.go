package repo

import (
	"context"

	"storefront/internal/models"
)

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	return s.DB.WithContext(ctx).Create(order).Error
}

// CreateOrderItems bulk-inserts all order lines in one statement.
func (s *Store) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	return s.DB.WithContext(ctx).Create(&items).Error
}

func (s *Store) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items.Product").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) ListOrders(ctx context.Context, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items.Product").
		Order("placed_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (s *Store) ListOrdersByCustomer(ctx context.Context, customerID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items.Product").
		Where("customer_id = ?", customerID).
		Order("placed_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	return s.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("payment_status", status).Error
}

func (s *Store) DeleteOrder(ctx context.Context, id uint) error {
	if err := s.DB.WithContext(ctx).
		Where("order_id = ?", id).
		Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&models.Order{}, id).Error
}
