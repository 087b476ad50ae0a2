package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/davrk/go-storefront/app/utils/calc"
	"github.com/davrk/go-storefront/app/utils/format"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutInput is the atomic checkout submission: shipping address and
// payment method. The client never supplies prices or totals; those are
// recomputed here from current product records.
type CheckoutInput struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address1      string
	Address2      string
	City          string
	PostCode      string
	PaymentMethod string
}

type CheckoutService struct {
	store      repositories.Store
	paymentSvc *PaymentService
	mailer     *Mailer
	logger     zerolog.Logger
}

func NewCheckoutService(store repositories.Store, paymentSvc *PaymentService, mailer *Mailer, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		store:      store,
		paymentSvc: paymentSvc,
		mailer:     mailer,
		logger:     logger,
	}
}

// PlaceOrder converts the user's cart into a persisted order: recompute
// totals server-side, authorize the (simulated) payment, then decrement
// stock, persist the order snapshot, and clear the cart in one transaction.
func (s *CheckoutService) PlaceOrder(ctx context.Context, user *models.User, input CheckoutInput) (*models.Order, error) {
	cart, err := s.store.Carts().GetOrCreateByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	detailed, err := s.store.Carts().GetWithItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if detailed == nil || len(detailed.CartItems) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(detailed.CartItems))
	for _, item := range detailed.CartItems {
		product := item.Product
		if product == nil {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
		}
		if product.Stock < item.Qty {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, product.Name)
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Qty)))
		subtotal = subtotal.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSlug: product.Slug,
			Qty:         item.Qty,
			Price:       product.Price,
			Subtotal:    lineTotal,
		})
	}

	shipping := calc.CalculateShipping(subtotal)
	tax := calc.CalculateTax(subtotal)
	grandTotal := calc.CalculateGrandTotal(subtotal, shipping, tax)

	payment, err := s.paymentSvc.Process(ctx, grandTotal, input.PaymentMethod)
	if err != nil {
		return nil, fmt.Errorf("payment authorization failed: %w", err)
	}

	order := &models.Order{
		OrderCode:     generateOrderCode(),
		UserID:        user.ID,
		OrderItems:    orderItems,
		Subtotal:      subtotal,
		ShippingCost:  shipping,
		TaxAmount:     tax,
		GrandTotal:    grandTotal,
		FirstName:     input.FirstName,
		LastName:      input.LastName,
		Email:         input.Email,
		Phone:         input.Phone,
		Address1:      input.Address1,
		Address2:      input.Address2,
		City:          input.City,
		PostCode:      input.PostCode,
		PaymentMethod: input.PaymentMethod,
		PaymentStatus: models.PaymentStatusPaid,
		PaymentRef:    payment.TransactionID,
		Status:        models.OrderStatusPending,
	}

	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		for _, item := range order.OrderItems {
			if err := tx.Products().DecrementStock(ctx, item.ProductID, item.Qty); err != nil {
				if errors.Is(err, repositories.ErrStockConflict) {
					return fmt.Errorf("%w: %s", ErrInsufficientStock, item.ProductName)
				}
				return fmt.Errorf("failed to decrement stock: %w", err)
			}
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if err := tx.Carts().ClearItems(ctx, cart.ID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("order_code", order.OrderCode).
		Str("user_id", user.ID).
		Str("grand_total", format.Money(order.GrandTotal)).
		Msg("order placed")

	if s.mailer != nil {
		if err := s.mailer.SendOrderConfirmation(order); err != nil {
			s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to send order confirmation email")
		}
	}

	return order, nil
}

func generateOrderCode() string {
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.New().String()[:8]))
}
