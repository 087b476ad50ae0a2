package memory

import (
	"context"
	"sort"
	"time"

	"github.com/davrk/go-storefront/app/models"
	"github.com/google/uuid"
)

type cartRepo struct {
	s *Store
}

func (r *cartRepo) GetOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.carts {
		if c.UserID == userID {
			cart := c
			return &cart, nil
		}
	}

	cart := models.Cart{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.s.carts[cart.ID] = cart
	return &cart, nil
}

func (r *cartRepo) GetWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.carts[cartID]
	if !ok {
		return nil, nil
	}
	cart := c
	cart.CartItems = make([]models.CartItem, 0)
	for _, item := range r.s.cartItems {
		if item.CartID != cartID {
			continue
		}
		if p, ok := r.s.products[item.ProductID]; ok {
			product := p
			item.Product = &product
		}
		cart.CartItems = append(cart.CartItems, item)
	}
	sort.Slice(cart.CartItems, func(i, j int) bool {
		return cart.CartItems[i].CreatedAt.Before(cart.CartItems[j].CreatedAt)
	})
	return &cart, nil
}

func (r *cartRepo) ClearItems(ctx context.Context, cartID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, item := range r.s.cartItems {
		if item.CartID == cartID {
			delete(r.s.cartItems, id)
		}
	}
	return nil
}

type cartItemRepo struct {
	s *Store
}

func (r *cartItemRepo) Add(ctx context.Context, item *models.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	stored := *item
	stored.Product = nil
	r.s.cartItems[item.ID] = stored
	return nil
}

func (r *cartItemRepo) Update(ctx context.Context, item *models.CartItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.UpdatedAt = time.Now()
	stored := *item
	stored.Product = nil
	r.s.cartItems[item.ID] = stored
	return nil
}

func (r *cartItemRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.cartItems, id)
	return nil
}

func (r *cartItemRepo) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if item, ok := r.s.cartItems[id]; ok {
		i := item
		return &i, nil
	}
	return nil, nil
}

func (r *cartItemRepo) GetByCartAndProduct(ctx context.Context, cartID, productID string) (*models.CartItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.cartItems {
		if item.CartID == cartID && item.ProductID == productID {
			i := item
			return &i, nil
		}
	}
	return nil, nil
}
