package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"storefront/internal/models"
)

func (s *Store) CreateCart(ctx context.Context, cart *models.Cart) error {
	return s.DB.WithContext(ctx).Create(cart).Error
}

func (s *Store) GetCart(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := s.DB.WithContext(ctx).First(&cart, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCartForUpdate locks the cart row for the rest of the transaction so two
// concurrent checkouts of the same cart serialize instead of both passing the
// empty-cart check. sqlite (tests) has no FOR UPDATE; its writes are
// serialized by the engine itself.
func (s *Store) GetCartForUpdate(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	q := s.DB.WithContext(ctx)
	if s.DB.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var cart models.Cart
	if err := q.First(&cart, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetCartItems loads the cart lines together with their products in a single
// query round trip.
func (s *Store) GetCartItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := s.DB.WithContext(ctx).
		Preload("Product").
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (s *Store) GetCartItemByProduct(ctx context.Context, cartID uuid.UUID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetCartItem(ctx context.Context, cartID uuid.UUID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := s.DB.WithContext(ctx).
		Preload("Product").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	return s.DB.WithContext(ctx).Create(item).Error
}

func (s *Store) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	return s.DB.WithContext(ctx).Save(item).Error
}

func (s *Store) DeleteCartItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	return s.DB.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{}).Error
}

// DeleteCart removes the cart together with its items. Items are deleted
// explicitly rather than trusting the FK cascade, which sqlite test databases
// do not always enforce.
func (s *Store) DeleteCart(ctx context.Context, id uuid.UUID) error {
	if err := s.DB.WithContext(ctx).
		Where("cart_id = ?", id).
		Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Delete(&models.Cart{}, "id = ?", id).Error
}
