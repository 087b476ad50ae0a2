package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories/memory"
	"github.com/davrk/go-storefront/app/services"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) (*mux.Router, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	logger := zerolog.Nop()

	authSvc := services.NewAuthService("test-secret", logger)
	paymentSvc := services.NewPaymentService(0, logger)

	router := NewRouter(Deps{
		Store:       store,
		AuthSvc:     authSvc,
		CartSvc:     services.NewCartService(store, logger),
		CheckoutSvc: services.NewCheckoutService(store, paymentSvc, nil, logger),
		ReviewSvc:   services.NewReviewService(store, logger),
		ReportSvc:   services.NewReportService(store),
		PaymentSvc:  paymentSvc,
		Logger:      logger,
	})
	return router, store
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func registerUser(t *testing.T, router http.Handler, email string) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":   "user-" + email[:4] + fmt.Sprint(len(email)),
		"email":      email,
		"password":   "password123",
		"first_name": "Test",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func seedAdmin(t *testing.T, router http.Handler, store *memory.Store) string {
	t.Helper()
	hash, err := helpers.HashPassword("admin123")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &models.User{
		Username:  "admin",
		Email:     "admin@example.com",
		Password:  hash,
		FirstName: "Admin",
		Role:      models.RoleAdmin,
	}))

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Token
}

func seedTestProduct(t *testing.T, store *memory.Store, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:  "Widget",
		Slug:  "widget-" + price,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, store.Products().Create(context.Background(), p))
	return p
}

func TestRegisterLoginMe(t *testing.T) {
	router, _ := testRouter(t)

	token := registerUser(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, models.RoleCustomer, user.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router, _ := testRouter(t)

	registerUser(t, router, "dup@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username":   "someone-else",
		"email":      "dup@example.com",
		"password":   "password123",
		"first_name": "Test",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email is already registered")
}

func TestLogin_WrongPasswordIsGeneric(t *testing.T) {
	router, _ := testRouter(t)
	registerUser(t, router, "ada@example.com")

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")

	// Unknown email must read identically so the endpoint does not leak
	// which addresses exist.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckoutFlow(t *testing.T) {
	router, store := testRouter(t)
	token := registerUser(t, router, "buyer@example.com")
	product := seedTestProduct(t, store, "40.00", 10)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", token, map[string]interface{}{
		"product_id": product.ID,
		"qty":        2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	checkout := map[string]string{
		"first_name":     "Ada",
		"last_name":      "Lovelace",
		"email":          "buyer@example.com",
		"phone":          "555-0100",
		"address1":       "1 Analytical Way",
		"city":           "London",
		"post_code":      "10001",
		"payment_method": "card",
	}

	// Card payments without card fields are rejected up front.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/orders", token, checkout)
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	checkout["card_number"] = "4242424242424242"
	checkout["card_expiry"] = "12/30"
	checkout["card_cvc"] = "123"
	rec = doJSON(t, router, http.MethodPost, "/api/v1/orders", token, checkout)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, order.GrandTotal.Equal(decimal.RequireFromString("90.60")), "got %s", order.GrandTotal)

	// Order shows up in the buyer's history.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), order.OrderCode)
}

func TestOrderStatusTransitions(t *testing.T) {
	router, store := testRouter(t)
	buyerToken := registerUser(t, router, "buyer@example.com")
	adminToken := seedAdmin(t, router, store)
	product := seedTestProduct(t, store, "10.00", 10)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", buyerToken, map[string]interface{}{
		"product_id": product.ID,
		"qty":        1,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/orders", buyerToken, map[string]string{
		"first_name":     "Ada",
		"last_name":      "Lovelace",
		"email":          "buyer@example.com",
		"phone":          "555-0100",
		"address1":       "1 Analytical Way",
		"city":           "London",
		"post_code":      "10001",
		"payment_method": "cod",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	statusPath := "/api/v1/admin/orders/" + order.ID + "/status"

	// Customers cannot reach the admin surface.
	rec = doJSON(t, router, http.MethodPut, statusPath, buyerToken, map[string]string{"status": "processing"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Skipping a stage is rejected.
	rec = doJSON(t, router, http.MethodPut, statusPath, adminToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// The legal path works stage by stage.
	for _, status := range []string{"processing", "shipped", "delivered"} {
		rec = doJSON(t, router, http.MethodPut, statusPath, adminToken, map[string]string{"status": status})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	// Delivered is terminal.
	rec = doJSON(t, router, http.MethodPut, statusPath, adminToken, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewsRecomputeRating(t *testing.T) {
	router, store := testRouter(t)
	product := seedTestProduct(t, store, "10.00", 10)

	first := registerUser(t, router, "one@example.com")
	second := registerUser(t, router, "two@example.com")

	reviewPath := "/api/v1/products/" + product.ID + "/reviews"
	rec := doJSON(t, router, http.MethodPost, reviewPath, first, map[string]interface{}{
		"rating":  3,
		"comment": "decent",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, reviewPath, second, map[string]interface{}{
		"rating":  5,
		"comment": "great",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	refreshed, err := store.Products().GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, refreshed.Rating)
	assert.Equal(t, 2, refreshed.ReviewCount)

	// Out-of-range ratings never land.
	rec = doJSON(t, router, http.MethodPost, reviewPath, first, map[string]interface{}{"rating": 6})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, reviewPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "decent")
}

func TestAdminDashboard(t *testing.T) {
	router, store := testRouter(t)
	adminToken := seedAdmin(t, router, store)
	seedTestProduct(t, store, "10.00", 10)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/admin/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var stats struct {
		TotalUsers    int64 `json:"total_users"`
		TotalProducts int64 `json:"total_products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.TotalProducts)
}

func TestPublicProductListing(t *testing.T) {
	router, store := testRouter(t)
	seedTestProduct(t, store, "10.00", 5)
	seedTestProduct(t, store, "200.00", 5)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/products?minPrice=100", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Products   []models.Product `json:"products"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 1, resp.Pagination.Total)
	require.Len(t, resp.Products, 1)
	assert.True(t, resp.Products[0].Price.Equal(decimal.RequireFromString("200.00")))
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := testRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
