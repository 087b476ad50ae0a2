package memory

import (
	"context"
	"sort"
	"time"

	"github.com/davrk/go-storefront/app/models"
	"github.com/google/uuid"
)

type reviewRepo struct {
	s *Store
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	stored := *review
	stored.User = nil
	r.s.reviews[review.ID] = stored
	return nil
}

func (r *reviewRepo) GetByProductID(ctx context.Context, productID string) ([]models.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	reviews := make([]models.Review, 0)
	for _, rv := range r.s.reviews {
		if rv.ProductID != productID {
			continue
		}
		if u, ok := r.s.users[rv.UserID]; ok {
			user := u
			rv.User = &user
		}
		reviews = append(reviews, rv)
	}
	sort.Slice(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (r *reviewRepo) AggregateForProduct(ctx context.Context, productID string) (float64, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var sum, count int
	for _, rv := range r.s.reviews {
		if rv.ProductID == productID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}
