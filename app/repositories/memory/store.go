// Package memory is the in-process Store adapter: plain maps keyed by the
// same string UUIDs the GORM adapter uses, guarded by one RWMutex. It backs
// tests and the STORAGE_DRIVER=memory mode.
package memory

import (
	"context"
	"sync"

	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
)

type Store struct {
	mu sync.RWMutex

	users         map[string]models.User
	categories    map[string]models.Category
	products      map[string]models.Product
	carts         map[string]models.Cart
	cartItems     map[string]models.CartItem
	wishlists     map[string]models.Wishlist
	wishlistItems map[string]models.WishlistItem
	orders        map[string]models.Order
	reviews       map[string]models.Review
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]models.User),
		categories:    make(map[string]models.Category),
		products:      make(map[string]models.Product),
		carts:         make(map[string]models.Cart),
		cartItems:     make(map[string]models.CartItem),
		wishlists:     make(map[string]models.Wishlist),
		wishlistItems: make(map[string]models.WishlistItem),
		orders:        make(map[string]models.Order),
		reviews:       make(map[string]models.Review),
	}
}

func (s *Store) Users() repositories.UserRepositoryImpl          { return &userRepo{s} }
func (s *Store) Products() repositories.ProductRepositoryImpl    { return &productRepo{s} }
func (s *Store) Categories() repositories.CategoryRepositoryImpl { return &categoryRepo{s} }
func (s *Store) Carts() repositories.CartRepositoryImpl          { return &cartRepo{s} }
func (s *Store) CartItems() repositories.CartItemRepositoryImpl  { return &cartItemRepo{s} }
func (s *Store) Wishlists() repositories.WishlistRepositoryImpl  { return &wishlistRepo{s} }
func (s *Store) Orders() repositories.OrderRepositoryImpl        { return &orderRepo{s} }
func (s *Store) Reviews() repositories.ReviewRepositoryImpl      { return &reviewRepo{s} }

// Transaction runs fn against the same store. There is no rollback here;
// the adapter trades atomicity for simplicity, which is fine for tests and
// single-process development use.
func (s *Store) Transaction(ctx context.Context, fn func(repositories.Store) error) error {
	return fn(s)
}
