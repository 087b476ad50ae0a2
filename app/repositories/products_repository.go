package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/davrk/go-storefront/app/models"
	"gorm.io/gorm"
)

var ErrStockConflict = errors.New("insufficient stock")

type ProductRepositoryImpl interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error
	DecrementStock(ctx context.Context, id string, qty int) error
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context) ([]CategoryProductCount, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

// productSortColumns whitelists client-supplied sort fields. Anything not
// listed falls through to the insertion order GORM returns, a no-op.
var productSortColumns = map[string]string{
	"name":       "name",
	"price":      "price",
	"rating":     "rating",
	"created_at": "created_at",
	"createdAt":  "created_at",
}

func (p *productRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := p.db.WithContext(ctx).Model(&models.Product{})

	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories c ON c.id = products.category_id").
			Where("c.slug = ?", filter.CategorySlug)
	}
	if filter.Search != "" {
		keyword := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER(products.brand) LIKE ?",
			keyword, keyword, keyword,
		)
	}
	if filter.Featured != nil {
		query = query.Where("products.is_featured = ?", *filter.Featured)
	}
	if filter.New != nil {
		query = query.Where("products.is_new = ?", *filter.New)
	}
	if filter.OnSale != nil {
		query = query.Where("products.is_on_sale = ?", *filter.OnSale)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}

	// Total is counted before pagination so clients can build page metadata.
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if column, ok := productSortColumns[filter.SortBy]; ok {
		direction := "ASC"
		if strings.EqualFold(filter.SortOrder, "desc") {
			direction = "DESC"
		}
		query = query.Order(fmt.Sprintf("products.%s %s", column, direction))
	}

	err := query.
		Preload("Category").
		Preload("Images").
		Limit(filter.Limit).
		Offset(filter.Offset()).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Preload("Images").
		First(&product, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error
}

func (p *productRepository) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	return p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": reviewCount,
		}).Error
}

// DecrementStock performs a guarded decrement so two concurrent checkouts
// cannot drive stock negative.
func (p *productRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	result := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStockConflict
	}
	return nil
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (p *productRepository) CountByCategory(ctx context.Context) ([]CategoryProductCount, error) {
	var rows []CategoryProductCount
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("c.id AS category_id, c.name AS category_name, COUNT(products.id) AS count").
		Joins("JOIN categories c ON c.id = products.category_id").
		Group("c.id, c.name").
		Scan(&rows).Error
	return rows, err
}
