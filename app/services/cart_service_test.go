package services

import (
	"context"
	"testing"

	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, store *memory.Store, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:  "Test Product",
		Slug:  "test-product-" + price,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, store.Products().Create(context.Background(), product))
	return product
}

func TestCartService_AddItem_NewLine(t *testing.T) {
	store := memory.NewStore()
	svc := NewCartService(store, zerolog.Nop())
	product := seedProduct(t, store, "10.00", 5)

	view, err := svc.AddItem(context.Background(), "user-1", product.ID, 2)
	require.NoError(t, err)
	require.Len(t, view.CartItems, 1)
	assert.Equal(t, 2, view.CartItems[0].Qty)
	assert.True(t, view.Totals.Subtotal.Equal(decimal.RequireFromString("20.00")))
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	store := memory.NewStore()
	svc := NewCartService(store, zerolog.Nop())
	product := seedProduct(t, store, "10.00", 10)

	_, err := svc.AddItem(context.Background(), "user-1", product.ID, 2)
	require.NoError(t, err)

	view, err := svc.AddItem(context.Background(), "user-1", product.ID, 3)
	require.NoError(t, err)
	require.Len(t, view.CartItems, 1, "adding the same product must merge, not duplicate")
	assert.Equal(t, 5, view.CartItems[0].Qty)
}

func TestCartService_AddItem_RejectsBeyondStock(t *testing.T) {
	store := memory.NewStore()
	svc := NewCartService(store, zerolog.Nop())
	product := seedProduct(t, store, "10.00", 3)

	_, err := svc.AddItem(context.Background(), "user-1", product.ID, 2)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), "user-1", product.ID, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock, "merged quantity 4 exceeds stock 3")
}

func TestCartService_AddItem_InvalidInputs(t *testing.T) {
	store := memory.NewStore()
	svc := NewCartService(store, zerolog.Nop())

	_, err := svc.AddItem(context.Background(), "user-1", "whatever", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddItem(context.Background(), "user-1", "missing-product", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCartService_UpdateItemQty(t *testing.T) {
	store := memory.NewStore()
	svc := NewCartService(store, zerolog.Nop())
	product := seedProduct(t, store, "25.00", 10)

	view, err := svc.AddItem(context.Background(), "user-1", product.ID, 1)
	require.NoError(t, err)
	itemID := view.CartItems[0].ID

	view, err = svc.UpdateItemQty(context.Background(), "user-1", itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.CartItems[0].Qty)
	assert.True(t, view.Totals.Subtotal.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, view.Totals.Shipping.IsZero(), "subtotal at threshold ships free")
}

func TestCartService_UpdateItemQty_OtherUsersItem(t *testing.T) {
	store := memory.NewStore()
	svc := NewCartService(store, zerolog.Nop())
	product := seedProduct(t, store, "10.00", 10)

	view, err := svc.AddItem(context.Background(), "user-1", product.ID, 1)
	require.NoError(t, err)

	_, err = svc.UpdateItemQty(context.Background(), "user-2", view.CartItems[0].ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound, "item ids must not be mutable cross-user")
}

func TestCartService_RemoveItemAndClear(t *testing.T) {
	store := memory.NewStore()
	svc := NewCartService(store, zerolog.Nop())
	first := seedProduct(t, store, "10.00", 10)
	second := seedProduct(t, store, "20.00", 10)

	view, err := svc.AddItem(context.Background(), "user-1", first.ID, 1)
	require.NoError(t, err)
	itemID := view.CartItems[0].ID
	_, err = svc.AddItem(context.Background(), "user-1", second.ID, 1)
	require.NoError(t, err)

	view, err = svc.RemoveItem(context.Background(), "user-1", itemID)
	require.NoError(t, err)
	require.Len(t, view.CartItems, 1)
	assert.Equal(t, second.ID, view.CartItems[0].ProductID)

	require.NoError(t, svc.Clear(context.Background(), "user-1"))
	view, err = svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, view.CartItems)
	assert.True(t, view.Totals.GrandTotal.IsZero())
}

func TestCartService_TotalsUseCurrentPrices(t *testing.T) {
	store := memory.NewStore()
	svc := NewCartService(store, zerolog.Nop())
	product := seedProduct(t, store, "10.00", 10)

	_, err := svc.AddItem(context.Background(), "user-1", product.ID, 2)
	require.NoError(t, err)

	product.Price = decimal.RequireFromString("15.00")
	require.NoError(t, store.Products().Update(context.Background(), product))

	view, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, view.Totals.Subtotal.Equal(decimal.RequireFromString("30.00")),
		"totals must reflect the price at read time, got %s", view.Totals.Subtotal)
}
