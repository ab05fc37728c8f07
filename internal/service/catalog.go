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

type CatalogService struct {
	Store *repo.Store
}

func (svc *CatalogService) ListCollections(ctx context.Context) ([]repo.CollectionRow, error) {
	return svc.Store.ListCollections(ctx)
}

func (svc *CatalogService) GetCollection(ctx context.Context, id uint) (*repo.CollectionRow, error) {
	row, err := svc.Store.GetCollection(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: collection", ErrNotFound)
	}
	return row, err
}

func (svc *CatalogService) CreateCollection(ctx context.Context, req transport.CollectionRequest) (*models.Collection, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	c := &models.Collection{Title: req.Title}
	if err := svc.Store.CreateCollection(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (svc *CatalogService) UpdateCollection(ctx context.Context, id uint, req transport.CollectionRequest) (*models.Collection, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	row, err := svc.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	c := &models.Collection{ID: row.ID, Title: req.Title}
	if err := svc.Store.SaveCollection(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCollection refuses to delete a collection that still has products.
func (svc *CatalogService) DeleteCollection(ctx context.Context, id uint) error {
	if _, err := svc.GetCollection(ctx, id); err != nil {
		return err
	}
	n, err := svc.Store.CountProductsInCollection(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: collection cannot be deleted because it is associated with a product", ErrProtected)
	}
	return svc.Store.DeleteCollection(ctx, id)
}

func (svc *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter) ([]models.Product, int64, error) {
	return svc.Store.ListProducts(ctx, f)
}

func (svc *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, err := svc.Store.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product", ErrNotFound)
	}
	return p, err
}

func (svc *CatalogService) validateProduct(ctx context.Context, req transport.ProductRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.UnitPrice.IsNegative() || req.UnitPrice.IsZero() {
		return fmt.Errorf("%w: unit_price must be positive", ErrValidation)
	}
	if req.Inventory < 0 {
		return fmt.Errorf("%w: inventory must not be negative", ErrValidation)
	}
	if _, err := svc.GetCollection(ctx, req.CollectionID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: collection does not exist", ErrValidation)
		}
		return err
	}
	return nil
}

func (svc *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	if err := svc.validateProduct(ctx, req); err != nil {
		return nil, err
	}
	p := &models.Product{
		Title:        req.Title,
		Description:  req.Description,
		UnitPrice:    req.UnitPrice,
		Inventory:    req.Inventory,
		CollectionID: req.CollectionID,
	}
	if err := svc.Store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (svc *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.ProductRequest) (*models.Product, error) {
	if err := svc.validateProduct(ctx, req); err != nil {
		return nil, err
	}
	p, err := svc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Title = req.Title
	p.Description = req.Description
	p.UnitPrice = req.UnitPrice
	p.Inventory = req.Inventory
	p.CollectionID = req.CollectionID
	p.Slug = ""
	if err := svc.Store.SaveProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct refuses to delete a product referenced by any order line.
// The guard is enforced here, not left to the database FK.
func (svc *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := svc.GetProduct(ctx, id); err != nil {
		return err
	}
	n, err := svc.Store.CountOrderItemsForProduct(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: product cannot be deleted because it is associated with an order item", ErrProtected)
	}
	return svc.Store.DeleteProduct(ctx, id)
}

func (svc *CatalogService) ClearInventory(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids required", ErrValidation)
	}
	return svc.Store.ClearInventory(ctx, ids)
}

func (svc *CatalogService) ListReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	if _, err := svc.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return svc.Store.ListReviews(ctx, productID)
}

func (svc *CatalogService) CreateReview(ctx context.Context, productID uint, req transport.ReviewRequest) (*models.Review, error) {
	if req.Name == "" || req.Description == "" {
		return nil, fmt.Errorf("%w: name and description are required", ErrValidation)
	}
	if _, err := svc.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	r := &models.Review{ProductID: productID, Name: req.Name, Description: req.Description}
	if err := svc.Store.CreateReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (svc *CatalogService) UpdateReview(ctx context.Context, productID, id uint, req transport.ReviewRequest) (*models.Review, error) {
	if req.Name == "" || req.Description == "" {
		return nil, fmt.Errorf("%w: name and description are required", ErrValidation)
	}
	r, err := svc.Store.GetReview(ctx, productID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: review", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	r.Name = req.Name
	r.Description = req.Description
	if err := svc.Store.SaveReview(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (svc *CatalogService) DeleteReview(ctx context.Context, productID, id uint) error {
	if _, err := svc.Store.GetReview(ctx, productID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: review", ErrNotFound)
		}
		return err
	}
	return svc.Store.DeleteReview(ctx, productID, id)
}

func (svc *CatalogService) ListImages(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	if _, err := svc.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return svc.Store.ListImages(ctx, productID)
}

func (svc *CatalogService) AddImage(ctx context.Context, productID uint, req transport.ImageRequest) (*models.ProductImage, error) {
	if req.Image == "" {
		return nil, fmt.Errorf("%w: image is required", ErrValidation)
	}
	if _, err := svc.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	img := &models.ProductImage{ProductID: productID, Image: req.Image}
	if err := svc.Store.CreateImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (svc *CatalogService) DeleteImage(ctx context.Context, productID, id uint) error {
	return svc.Store.DeleteImage(ctx, productID, id)
}
