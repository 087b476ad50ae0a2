package memory

import (
	"context"
	"testing"

	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()

	category := &models.Category{Name: "Gadgets", Slug: "gadgets"}
	require.NoError(t, store.Categories().Create(ctx, category))

	prices := []string{"5.00", "15.00", "25.00", "35.00", "45.00"}
	for i, price := range prices {
		p := &models.Product{
			Name:       "Gadget " + price,
			Slug:       "gadget-" + price,
			Price:      decimal.RequireFromString(price),
			Stock:      10,
			CategoryID: category.ID,
			IsFeatured: i == 0,
		}
		require.NoError(t, store.Products().Create(ctx, p))
	}
}

func TestProductList_PriceRange(t *testing.T) {
	store := NewStore()
	seedCatalog(t, store)

	min := decimal.RequireFromString("10.00")
	max := decimal.RequireFromString("40.00")
	products, total, err := store.Products().List(context.Background(), repositories.ProductFilter{
		MinPrice: &min,
		MaxPrice: &max,
		Page:     1,
		Limit:    20,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	for _, p := range products {
		assert.True(t, p.Price.GreaterThanOrEqual(min) && p.Price.LessThanOrEqual(max),
			"price %s outside [10, 40]", p.Price)
	}
}

func TestProductList_PaginationTotalCountsAllMatches(t *testing.T) {
	store := NewStore()
	seedCatalog(t, store)

	products, total, err := store.Products().List(context.Background(), repositories.ProductFilter{
		Page:  2,
		Limit: 2,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total, "total must count every match, not one page")
	assert.Len(t, products, 2)

	products, _, err = store.Products().List(context.Background(), repositories.ProductFilter{
		Page:  3,
		Limit: 2,
	})
	require.NoError(t, err)
	assert.Len(t, products, 1, "last page carries the remainder")
}

func TestProductList_SortByPrice(t *testing.T) {
	store := NewStore()
	seedCatalog(t, store)

	products, _, err := store.Products().List(context.Background(), repositories.ProductFilter{
		SortBy:    "price",
		SortOrder: "desc",
		Page:      1,
		Limit:     20,
	})
	require.NoError(t, err)
	require.Len(t, products, 5)
	for i := 1; i < len(products); i++ {
		assert.True(t, products[i].Price.LessThanOrEqual(products[i-1].Price),
			"expected descending prices, got %s before %s", products[i-1].Price, products[i].Price)
	}
}

func TestProductList_CategoryAndFlags(t *testing.T) {
	store := NewStore()
	seedCatalog(t, store)

	featured := true
	products, total, err := store.Products().List(context.Background(), repositories.ProductFilter{
		CategorySlug: "gadgets",
		Featured:     &featured,
		Page:         1,
		Limit:        20,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	require.NotNil(t, products[0].Category)
	assert.Equal(t, "gadgets", products[0].Category.Slug)

	_, total, err = store.Products().List(context.Background(), repositories.ProductFilter{
		CategorySlug: "no-such-category",
		Page:         1,
		Limit:        20,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDecrementStock_Conflict(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	p := &models.Product{Name: "Scarce", Slug: "scarce", Price: decimal.NewFromInt(10), Stock: 2}
	require.NoError(t, store.Products().Create(ctx, p))

	require.NoError(t, store.Products().DecrementStock(ctx, p.ID, 2))
	err := store.Products().DecrementStock(ctx, p.ID, 1)
	assert.ErrorIs(t, err, repositories.ErrStockConflict)

	refreshed, err := store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, refreshed.Stock, "failed decrement must not go negative")
}
