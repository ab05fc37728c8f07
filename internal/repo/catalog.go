package repo

import (
	"context"

	"storefront/internal/models"
)

// CollectionRow is a collection with its derived product count. The count is
// computed per query, never stored.
type CollectionRow struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	ProductsCount int64  `json:"products_count"`
}

func (s *Store) ListCollections(ctx context.Context) ([]CollectionRow, error) {
	var rows []CollectionRow
	err := s.DB.WithContext(ctx).
		Model(&models.Collection{}).
		Select("collections.id, collections.title, count(products.id) as products_count").
		Joins("left join products on products.collection_id = collections.id").
		Group("collections.id").
		Order("collections.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) GetCollection(ctx context.Context, id uint) (*CollectionRow, error) {
	var row CollectionRow
	err := s.DB.WithContext(ctx).
		Model(&models.Collection{}).
		Select("collections.id, collections.title, count(products.id) as products_count").
		Joins("left join products on products.collection_id = collections.id").
		Where("collections.id = ?", id).
		Group("collections.id").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) CreateCollection(ctx context.Context, c *models.Collection) error {
	return s.DB.WithContext(ctx).Create(c).Error
}

func (s *Store) SaveCollection(ctx context.Context, c *models.Collection) error {
	return s.DB.WithContext(ctx).Save(c).Error
}

func (s *Store) DeleteCollection(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.Collection{}, id).Error
}

func (s *Store) CountProductsInCollection(ctx context.Context, collectionID uint) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("collection_id = ?", collectionID).
		Count(&n).Error
	return n, err
}

type ProductFilter struct {
	CollectionID uint
	OrderBy      string
	Offset       int
	Limit        int
}

func (s *Store) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, int64, error) {
	q := s.DB.WithContext(ctx).Model(&models.Product{})
	if f.CollectionID != 0 {
		q = q.Where("collection_id = ?", f.CollectionID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "id ASC"
	switch f.OrderBy {
	case "unit_price":
		order = "unit_price ASC"
	case "-unit_price":
		order = "unit_price DESC"
	case "last_update":
		order = "last_update ASC"
	case "-last_update":
		order = "last_update DESC"
	}

	var items []models.Product
	if err := q.Order(order).Offset(f.Offset).Limit(f.Limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	return s.DB.WithContext(ctx).Create(p).Error
}

func (s *Store) SaveProduct(ctx context.Context, p *models.Product) error {
	return s.DB.WithContext(ctx).Save(p).Error
}

func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (s *Store) CountOrderItemsForProduct(ctx context.Context, productID uint) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("product_id = ?", productID).
		Count(&n).Error
	return n, err
}

// ClearInventory zeroes the inventory of the given products and reports how
// many rows were touched.
func (s *Store) ClearInventory(ctx context.Context, ids []uint) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id IN ?", ids).
		Update("inventory", 0)
	return res.RowsAffected, res.Error
}

func (s *Store) ListReviews(ctx context.Context, productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&reviews).Error
	return reviews, err
}

func (s *Store) GetReview(ctx context.Context, productID, id uint) (*models.Review, error) {
	var r models.Review
	err := s.DB.WithContext(ctx).
		Where("id = ? AND product_id = ?", id, productID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	return s.DB.WithContext(ctx).Create(r).Error
}

func (s *Store) SaveReview(ctx context.Context, r *models.Review) error {
	return s.DB.WithContext(ctx).Save(r).Error
}

func (s *Store) DeleteReview(ctx context.Context, productID, id uint) error {
	return s.DB.WithContext(ctx).
		Where("id = ? AND product_id = ?", id, productID).
		Delete(&models.Review{}).Error
}

func (s *Store) ListImages(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := s.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&images).Error
	return images, err
}

func (s *Store) CreateImage(ctx context.Context, img *models.ProductImage) error {
	return s.DB.WithContext(ctx).Create(img).Error
}

func (s *Store) DeleteImage(ctx context.Context, productID, id uint) error {
	return s.DB.WithContext(ctx).
		Where("id = ? AND product_id = ?", id, productID).
		Delete(&models.ProductImage{}).Error
}
