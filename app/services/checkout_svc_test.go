package services

import (
	"context"
	"strings"
	"testing"

	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutFixture(t *testing.T) (*CheckoutService, *CartService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	cartSvc := NewCartService(store, zerolog.Nop())
	paymentSvc := NewPaymentService(0, zerolog.Nop())
	checkoutSvc := NewCheckoutService(store, paymentSvc, nil, zerolog.Nop())
	return checkoutSvc, cartSvc, store
}

func testShippingInput(method string) CheckoutInput {
	return CheckoutInput{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		Phone:         "555-0100",
		Address1:      "1 Analytical Way",
		City:          "London",
		PostCode:      "10001",
		PaymentMethod: method,
	}
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	checkoutSvc, _, _ := checkoutFixture(t)
	user := &models.User{ID: "user-1"}

	_, err := checkoutSvc.PlaceOrder(context.Background(), user, testShippingInput(models.PaymentMethodCard))
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder_TotalsAndSnapshot(t *testing.T) {
	checkoutSvc, cartSvc, store := checkoutFixture(t)
	user := &models.User{ID: "user-1"}
	product := seedProduct(t, store, "40.00", 10)

	_, err := cartSvc.AddItem(context.Background(), user.ID, product.ID, 2)
	require.NoError(t, err)

	order, err := checkoutSvc.PlaceOrder(context.Background(), user, testShippingInput(models.PaymentMethodCard))
	require.NoError(t, err)

	// 80.00 subtotal, 5.00 shipping (below threshold), 5.60 tax.
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("80.00")), "got %s", order.Subtotal)
	assert.True(t, order.ShippingCost.Equal(decimal.RequireFromString("5.00")), "got %s", order.ShippingCost)
	assert.True(t, order.TaxAmount.Equal(decimal.RequireFromString("5.60")), "got %s", order.TaxAmount)
	assert.True(t, order.GrandTotal.Equal(decimal.RequireFromString("90.60")), "got %s", order.GrandTotal)

	require.Len(t, order.OrderItems, 1)
	assert.Equal(t, product.Name, order.OrderItems[0].ProductName)
	assert.True(t, order.OrderItems[0].Price.Equal(product.Price))

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.True(t, strings.HasPrefix(order.OrderCode, "ORD-"))
	assert.True(t, strings.HasPrefix(order.PaymentRef, "TXN-"))
}

func TestPlaceOrder_DecrementsStockAndClearsCart(t *testing.T) {
	checkoutSvc, cartSvc, store := checkoutFixture(t)
	user := &models.User{ID: "user-1"}
	product := seedProduct(t, store, "10.00", 5)

	_, err := cartSvc.AddItem(context.Background(), user.ID, product.ID, 3)
	require.NoError(t, err)

	_, err = checkoutSvc.PlaceOrder(context.Background(), user, testShippingInput(models.PaymentMethodCOD))
	require.NoError(t, err)

	refreshed, err := store.Products().GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, refreshed.Stock)

	view, err := cartSvc.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, view.CartItems, "checkout must clear the cart")
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	checkoutSvc, cartSvc, store := checkoutFixture(t)
	user := &models.User{ID: "user-1"}
	product := seedProduct(t, store, "10.00", 5)

	_, err := cartSvc.AddItem(context.Background(), user.ID, product.ID, 5)
	require.NoError(t, err)

	// Stock dropped between carting and checkout.
	product.Stock = 2
	require.NoError(t, store.Products().Update(context.Background(), product))

	_, err = checkoutSvc.PlaceOrder(context.Background(), user, testShippingInput(models.PaymentMethodCard))
	assert.ErrorIs(t, err, ErrInsufficientStock)

	view, err := cartSvc.GetCart(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, view.CartItems, 1, "failed checkout must leave the cart intact")
}

func TestPlaceOrder_FreeShippingOverThreshold(t *testing.T) {
	checkoutSvc, cartSvc, store := checkoutFixture(t)
	user := &models.User{ID: "user-1"}
	product := seedProduct(t, store, "60.00", 10)

	_, err := cartSvc.AddItem(context.Background(), user.ID, product.ID, 2)
	require.NoError(t, err)

	order, err := checkoutSvc.PlaceOrder(context.Background(), user, testShippingInput(models.PaymentMethodCard))
	require.NoError(t, err)
	assert.True(t, order.ShippingCost.IsZero(), "120.00 subtotal ships free, got %s", order.ShippingCost)
}

func TestPlaceOrder_PersistsOrderForUser(t *testing.T) {
	checkoutSvc, cartSvc, store := checkoutFixture(t)
	user := &models.User{ID: "user-1"}
	product := seedProduct(t, store, "10.00", 10)

	_, err := cartSvc.AddItem(context.Background(), user.ID, product.ID, 1)
	require.NoError(t, err)

	placed, err := checkoutSvc.PlaceOrder(context.Background(), user, testShippingInput(models.PaymentMethodCard))
	require.NoError(t, err)

	orders, err := store.Orders().FindByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
}
