package memory

import (
	"context"
	"sort"
	"time"

	"github.com/davrk/go-storefront/app/models"
	"github.com/google/uuid"
)

type wishlistRepo struct {
	s *Store
}

func (r *wishlistRepo) GetOrCreateByUserID(ctx context.Context, userID string) (*models.Wishlist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, w := range r.s.wishlists {
		if w.UserID == userID {
			wishlist := w
			return &wishlist, nil
		}
	}

	wishlist := models.Wishlist{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.s.wishlists[wishlist.ID] = wishlist
	return &wishlist, nil
}

func (r *wishlistRepo) GetWithItems(ctx context.Context, wishlistID string) (*models.Wishlist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.wishlists[wishlistID]
	if !ok {
		return nil, nil
	}
	wishlist := w
	wishlist.Items = make([]models.WishlistItem, 0)
	for _, item := range r.s.wishlistItems {
		if item.WishlistID != wishlistID {
			continue
		}
		if p, ok := r.s.products[item.ProductID]; ok {
			product := p
			item.Product = &product
		}
		wishlist.Items = append(wishlist.Items, item)
	}
	sort.Slice(wishlist.Items, func(i, j int) bool {
		return wishlist.Items[i].CreatedAt.Before(wishlist.Items[j].CreatedAt)
	})
	return &wishlist, nil
}

func (r *wishlistRepo) AddItem(ctx context.Context, item *models.WishlistItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	stored := *item
	stored.Product = nil
	r.s.wishlistItems[item.ID] = stored
	return nil
}

func (r *wishlistRepo) GetItem(ctx context.Context, wishlistID, productID string) (*models.WishlistItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, item := range r.s.wishlistItems {
		if item.WishlistID == wishlistID && item.ProductID == productID {
			i := item
			return &i, nil
		}
	}
	return nil, nil
}

func (r *wishlistRepo) GetItemByID(ctx context.Context, id string) (*models.WishlistItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if item, ok := r.s.wishlistItems[id]; ok {
		i := item
		return &i, nil
	}
	return nil, nil
}

func (r *wishlistRepo) DeleteItem(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.wishlistItems, id)
	return nil
}
