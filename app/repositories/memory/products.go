package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/google/uuid"
)

type productRepo struct {
	s *Store
}

func (r *productRepo) List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var categoryID string
	if filter.CategorySlug != "" {
		for _, c := range r.s.categories {
			if c.Slug == filter.CategorySlug {
				categoryID = c.ID
				break
			}
		}
		if categoryID == "" {
			return []models.Product{}, 0, nil
		}
	}

	keyword := strings.ToLower(filter.Search)

	matched := make([]models.Product, 0)
	for _, p := range r.s.products {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(p.Name), keyword) &&
			!strings.Contains(strings.ToLower(p.Description), keyword) &&
			!strings.Contains(strings.ToLower(p.Brand), keyword) {
			continue
		}
		if filter.Featured != nil && p.IsFeatured != *filter.Featured {
			continue
		}
		if filter.New != nil && p.IsNew != *filter.New {
			continue
		}
		if filter.OnSale != nil && p.IsOnSale != *filter.OnSale {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		matched = append(matched, r.withCategory(p))
	}

	total := int64(len(matched))
	sortProducts(matched, filter.SortBy, filter.SortOrder)

	offset := filter.Offset()
	if offset >= len(matched) {
		return []models.Product{}, total, nil
	}
	end := offset + filter.Limit
	if filter.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// sortProducts mirrors the whitelist of the GORM adapter; an unrecognized
// field leaves map iteration order in place, which is as close to "no-op
// ordering" as maps get.
func sortProducts(products []models.Product, sortBy, sortOrder string) {
	desc := strings.EqualFold(sortOrder, "desc")

	var less func(a, b models.Product) bool
	switch sortBy {
	case "name":
		less = func(a, b models.Product) bool { return a.Name < b.Name }
	case "price":
		less = func(a, b models.Product) bool { return a.Price.LessThan(b.Price) }
	case "rating":
		less = func(a, b models.Product) bool { return a.Rating < b.Rating }
	case "created_at", "createdAt":
		less = func(a, b models.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func (r *productRepo) withCategory(p models.Product) models.Product {
	if c, ok := r.s.categories[p.CategoryID]; ok {
		cat := c
		p.Category = &cat
	}
	return p
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if p, ok := r.s.products[id]; ok {
		product := r.withCategory(p)
		return &product, nil
	}
	return nil, nil
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.products {
		if p.Slug == slug {
			product := r.withCategory(p)
			return &product, nil
		}
	}
	return nil, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product.UpdatedAt = time.Now()
	r.s.products[product.ID] = *product
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.products, id)
	return nil
}

func (r *productRepo) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok {
		return nil
	}
	p.Rating = rating
	p.ReviewCount = reviewCount
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) DecrementStock(ctx context.Context, id string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products[id]
	if !ok || p.Stock < qty {
		return repositories.ErrStockConflict
	}
	p.Stock -= qty
	p.UpdatedAt = time.Now()
	r.s.products[id] = p
	return nil
}

func (r *productRepo) Count(ctx context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.s.products)), nil
}

func (r *productRepo) CountByCategory(ctx context.Context) ([]repositories.CategoryProductCount, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, p := range r.s.products {
		if p.CategoryID != "" {
			counts[p.CategoryID]++
		}
	}

	rows := make([]repositories.CategoryProductCount, 0, len(counts))
	for categoryID, count := range counts {
		row := repositories.CategoryProductCount{CategoryID: categoryID, Count: count}
		if c, ok := r.s.categories[categoryID]; ok {
			row.CategoryName = c.Name
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CategoryName < rows[j].CategoryName })
	return rows, nil
}
