package repositories

import (
	"context"

	"gorm.io/gorm"
)

// gormStore is the MySQL-backed Store. Transaction rebinds every
// repository to the transactional *gorm.DB so a checkout's stock
// decrements, order insert, and cart clearing commit or roll back
// together.
type gormStore struct {
	db *gorm.DB

	users      UserRepositoryImpl
	products   ProductRepositoryImpl
	categories CategoryRepositoryImpl
	carts      CartRepositoryImpl
	cartItems  CartItemRepositoryImpl
	wishlists  WishlistRepositoryImpl
	orders     OrderRepositoryImpl
	reviews    ReviewRepositoryImpl
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{
		db:         db,
		users:      NewUserRepository(db),
		products:   NewProductRepository(db),
		categories: NewCategoryRepository(db),
		carts:      NewCartRepository(db),
		cartItems:  NewCartItemRepository(db),
		wishlists:  NewWishlistRepository(db),
		orders:     NewOrderRepository(db),
		reviews:    NewReviewRepository(db),
	}
}

func (s *gormStore) Users() UserRepositoryImpl          { return s.users }
func (s *gormStore) Products() ProductRepositoryImpl    { return s.products }
func (s *gormStore) Categories() CategoryRepositoryImpl { return s.categories }
func (s *gormStore) Carts() CartRepositoryImpl          { return s.carts }
func (s *gormStore) CartItems() CartItemRepositoryImpl  { return s.cartItems }
func (s *gormStore) Wishlists() WishlistRepositoryImpl  { return s.wishlists }
func (s *gormStore) Orders() OrderRepositoryImpl        { return s.orders }
func (s *gormStore) Reviews() ReviewRepositoryImpl      { return s.reviews }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}
