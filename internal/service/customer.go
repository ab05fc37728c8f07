package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storefront/internal/models"
	"storefront/internal/repo"
	"storefront/internal/transport"
)

type CustomerService struct {
	Store *repo.Store
}

func (svc *CustomerService) ListCustomers(ctx context.Context, offset, limit int) ([]models.Customer, error) {
	return svc.Store.ListCustomers(ctx, offset, limit)
}

func (svc *CustomerService) Me(ctx context.Context, userID uint) (*models.Customer, error) {
	c, err := svc.Store.GetCustomerByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: customer profile", ErrNotFound)
	}
	return c, err
}

func (svc *CustomerService) UpdateMe(ctx context.Context, userID uint, req transport.UpdateCustomerRequest) (*models.Customer, error) {
	c, err := svc.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Phone = req.Phone
	c.BirthDate = req.BirthDate
	if err := svc.Store.SaveCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateMembership changes the customer tier; admin-only at the router.
func (svc *CustomerService) UpdateMembership(ctx context.Context, id uint, membership string) (*models.Customer, error) {
	switch membership {
	case models.MembershipBronze, models.MembershipSilver, models.MembershipGold:
	default:
		return nil, fmt.Errorf("%w: invalid membership %q", ErrValidation, membership)
	}
	c, err := svc.Store.GetCustomer(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: customer", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	c.Membership = membership
	if err := svc.Store.SaveCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
