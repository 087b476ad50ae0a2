package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/davrk/go-storefront/app/utils/calc"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("insufficient product stock")
)

type CartTotals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// CartView is the cart payload returned to clients: the persisted cart
// plus totals computed on read from current product prices.
type CartView struct {
	*models.Cart
	Totals CartTotals `json:"totals"`
}

type CartService struct {
	store  repositories.Store
	logger zerolog.Logger
}

func NewCartService(store repositories.Store, logger zerolog.Logger) *CartService {
	return &CartService{store: store, logger: logger}
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*CartView, error) {
	cart, err := s.store.Carts().GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}
	return s.view(ctx, cart.ID)
}

// AddItem merges quantity into an existing line for the product when one
// exists, otherwise inserts a new line.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, qty int) (*CartView, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.store.Carts().GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	product, err := s.store.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.store.CartItems().GetByCartAndProduct(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing cart item: %w", err)
	}

	newQty := qty
	if existing != nil {
		newQty += existing.Qty
	}
	if product.Stock < newQty {
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		existing.Qty = newQty
		if err := s.store.CartItems().Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Qty:       qty,
		}
		if err := s.store.CartItems().Add(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return s.view(ctx, cart.ID)
}

func (s *CartService) UpdateItemQty(ctx context.Context, userID, itemID string, qty int) (*CartView, error) {
	if qty < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	product, err := s.store.Products().GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.Stock < qty {
		return nil, ErrInsufficientStock
	}

	item.Qty = qty
	if err := s.store.CartItems().Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.view(ctx, cart.ID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*CartView, error) {
	cart, item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.store.CartItems().Delete(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.view(ctx, cart.ID)
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	cart, err := s.store.Carts().GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get cart: %w", err)
	}
	return s.store.Carts().ClearItems(ctx, cart.ID)
}

// ownedItem loads an item and verifies it belongs to the caller's cart, so
// one user cannot mutate another user's lines by guessing item ids.
func (s *CartService) ownedItem(ctx context.Context, userID, itemID string) (*models.Cart, *models.CartItem, error) {
	cart, err := s.store.Carts().GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get cart: %w", err)
	}

	item, err := s.store.CartItems().GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cart item: %w", err)
	}
	if item == nil || item.CartID != cart.ID {
		return nil, nil, ErrCartItemNotFound
	}
	return cart, item, nil
}

func (s *CartService) view(ctx context.Context, cartID string) (*CartView, error) {
	cart, err := s.store.Carts().GetWithItems(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}

	subtotal := decimal.Zero
	for _, item := range cart.CartItems {
		if item.Product == nil {
			s.logger.Warn().Str("cart_item_id", item.ID).Msg("cart item references missing product")
			continue
		}
		subtotal = subtotal.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	shipping := calc.CalculateShipping(subtotal)
	tax := calc.CalculateTax(subtotal)

	return &CartView{
		Cart: cart,
		Totals: CartTotals{
			Subtotal:   subtotal,
			Shipping:   shipping,
			Tax:        tax,
			GrandTotal: calc.CalculateGrandTotal(subtotal, shipping, tax),
		},
	}, nil
}
