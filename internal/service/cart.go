package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/models"
	"storefront/internal/repo"
	"storefront/internal/transport"
)

type CartService struct {
	Store *repo.Store
}

func (svc *CartService) CreateCart(ctx context.Context) (*models.Cart, error) {
	cart := &models.Cart{}
	if err := svc.Store.CreateCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (svc *CartService) GetCart(ctx context.Context, id uuid.UUID) (transport.CartResponse, error) {
	cart, err := svc.Store.GetCart(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.CartResponse{}, fmt.Errorf("%w: cart", ErrNotFound)
	}
	if err != nil {
		return transport.CartResponse{}, err
	}
	items, err := svc.Store.GetCartItems(ctx, cart.ID)
	if err != nil {
		return transport.CartResponse{}, err
	}
	return transport.NewCartResponse(cart, items), nil
}

func (svc *CartService) DeleteCart(ctx context.Context, id uuid.UUID) error {
	if _, err := svc.Store.GetCart(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart", ErrNotFound)
		}
		return err
	}
	return svc.Store.DeleteCart(ctx, id)
}

// AddItem upserts a cart line: adding a product already in the cart bumps its
// quantity instead of creating a second row.
func (svc *CartService) AddItem(ctx context.Context, cartID uuid.UUID, req transport.AddCartItemRequest) (*models.CartItem, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}

	if _, err := svc.Store.GetCart(ctx, cartID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart", ErrNotFound)
		}
		return nil, err
	}

	if _, err := svc.Store.GetProduct(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product does not exist", ErrValidation)
		}
		return nil, err
	}

	var item *models.CartItem
	err := svc.Store.Tx(ctx, func(tx *repo.Store) error {
		existing, err := tx.GetCartItemByProduct(ctx, cartID, req.ProductID)
		if err == nil {
			existing.Quantity += req.Quantity
			item = existing
			return tx.SaveCartItem(ctx, existing)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		item = &models.CartItem{
			CartID:    cartID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		return tx.CreateCartItem(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return svc.Store.GetCartItem(ctx, cartID, item.ID)
}

// UpdateItem overwrites the line quantity rather than accumulating.
func (svc *CartService) UpdateItem(ctx context.Context, cartID uuid.UUID, itemID uint, req transport.UpdateCartItemRequest) (*models.CartItem, error) {
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}
	item, err := svc.Store.GetCartItem(ctx, cartID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cart item", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	item.Quantity = req.Quantity
	if err := svc.Store.SaveCartItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (svc *CartService) RemoveItem(ctx context.Context, cartID uuid.UUID, itemID uint) error {
	if _, err := svc.Store.GetCartItem(ctx, cartID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cart item", ErrNotFound)
		}
		return err
	}
	return svc.Store.DeleteCartItem(ctx, cartID, itemID)
}
