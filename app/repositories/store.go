package repositories

import (
	"context"

	"github.com/shopspring/decimal"
)

// Store bundles the per-entity repositories behind one handle so handlers
// and services can be wired against either the GORM adapter or the
// in-memory adapter. Transaction runs fn against a store bound to a single
// transaction; implementations without real transactions may run fn
// directly under their own exclusion.
type Store interface {
	Users() UserRepositoryImpl
	Products() ProductRepositoryImpl
	Categories() CategoryRepositoryImpl
	Carts() CartRepositoryImpl
	CartItems() CartItemRepositoryImpl
	Wishlists() WishlistRepositoryImpl
	Orders() OrderRepositoryImpl
	Reviews() ReviewRepositoryImpl

	Transaction(ctx context.Context, fn func(Store) error) error
}

// ProductFilter carries the catalog listing filters. Nil pointer fields
// mean "not filtered". Page and Limit are 1-based and already clamped by
// the handler.
type ProductFilter struct {
	CategorySlug string
	Search       string
	Featured     *bool
	New          *bool
	OnSale       *bool
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// CategoryProductCount is one row of the products-per-category aggregate.
type CategoryProductCount struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int64  `json:"count"`
}
