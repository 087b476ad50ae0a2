package services

import (
	"context"
	"fmt"

	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/rs/zerolog"
)

type ReviewService struct {
	store  repositories.Store
	logger zerolog.Logger
}

func NewReviewService(store repositories.Store, logger zerolog.Logger) *ReviewService {
	return &ReviewService{store: store, logger: logger}
}

// Create appends a review and rewrites the product's derived rating (mean
// of all ratings) and review count in the same transaction.
func (s *ReviewService) Create(ctx context.Context, userID, productID string, rating int, comment string) (*models.Review, error) {
	product, err := s.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}

	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		if err := tx.Reviews().Create(ctx, review); err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		avg, count, err := tx.Reviews().AggregateForProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to aggregate reviews: %w", err)
		}
		if err := tx.Products().UpdateRating(ctx, productID, avg, count); err != nil {
			return fmt.Errorf("failed to update product rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	product, err := s.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.store.Reviews().GetByProductID(ctx, productID)
}
