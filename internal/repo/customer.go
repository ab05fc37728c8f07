package repo

import (
	"context"

	"storefront/internal/models"
)

func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return s.DB.WithContext(ctx).Create(c).Error
}

func (s *Store) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) GetCustomerByUserID(ctx context.Context, userID uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context, offset, limit int) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.DB.WithContext(ctx).
		Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&customers).Error
	return customers, err
}

func (s *Store) SaveCustomer(ctx context.Context, c *models.Customer) error {
	return s.DB.WithContext(ctx).Save(c).Error
}
