package routes

import (
	"net/http"
	"time"

	"github.com/davrk/go-storefront/app/handlers"
	"github.com/davrk/go-storefront/app/middlewares"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/davrk/go-storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
	"golang.org/x/time/rate"
)

// Deps carries everything the router needs. Handlers are constructed here
// so main only assembles the store and services.
type Deps struct {
	Store       repositories.Store
	AuthSvc     *services.AuthService
	CartSvc     *services.CartService
	CheckoutSvc *services.CheckoutService
	ReviewSvc   *services.ReviewService
	ReportSvc   *services.ReportService
	PaymentSvc  *services.PaymentService
	Logger      zerolog.Logger
}

func NewRouter(deps Deps) *mux.Router {
	rnd := render.New()
	validate := validator.New()

	authHandler := handlers.NewAuthHandler(rnd, deps.Store.Users(), deps.AuthSvc, validate, deps.Logger)
	productHandler := handlers.NewProductHandler(rnd, deps.Store.Products(), deps.Store.Categories(), validate, deps.Logger)
	categoryHandler := handlers.NewCategoryHandler(rnd, deps.Store.Categories(), validate, deps.Logger)
	cartHandler := handlers.NewCartHandler(rnd, deps.CartSvc, validate, deps.Logger)
	wishlistHandler := handlers.NewWishlistHandler(rnd, deps.Store, validate, deps.Logger)
	orderHandler := handlers.NewOrderHandler(rnd, deps.Store, deps.CheckoutSvc, validate, deps.Logger)
	reviewHandler := handlers.NewReviewHandler(rnd, deps.ReviewSvc, validate, deps.Logger)
	paymentHandler := handlers.NewPaymentHandler(rnd, deps.PaymentSvc, validate, deps.Logger)
	dashboardHandler := handlers.NewDashboardHandler(rnd, deps.ReportSvc, deps.Logger)

	limiter := middlewares.NewRateLimiter(rate.Every(time.Second/20), 40, rnd)

	router := mux.NewRouter()
	router.Use(
		middlewares.Recovery(deps.Logger, rnd),
		middlewares.RequestLogging(deps.Logger),
		middlewares.SecurityHeaders(),
		middlewares.CORS(),
		limiter.Middleware(),
	)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		_ = rnd.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()

	// Public routes.
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/products", productHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/products/{slug}", productHandler.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/products/{id}/reviews", reviewHandler.ListByProduct).Methods(http.MethodGet)
	api.HandleFunc("/categories", categoryHandler.List).Methods(http.MethodGet)

	// Authenticated routes.
	authed := api.NewRoute().Subrouter()
	authed.Use(middlewares.Authenticate(deps.AuthSvc, deps.Store.Users(), rnd, deps.Logger))

	authed.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)
	authed.HandleFunc("/auth/me", authHandler.UpdateProfile).Methods(http.MethodPut)

	authed.HandleFunc("/cart", cartHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/cart", cartHandler.Clear).Methods(http.MethodDelete)
	authed.HandleFunc("/cart/items", cartHandler.AddItem).Methods(http.MethodPost)
	authed.HandleFunc("/cart/items/{itemId}", cartHandler.UpdateItem).Methods(http.MethodPut)
	authed.HandleFunc("/cart/items/{itemId}", cartHandler.RemoveItem).Methods(http.MethodDelete)

	authed.HandleFunc("/wishlist", wishlistHandler.Get).Methods(http.MethodGet)
	authed.HandleFunc("/wishlist/items", wishlistHandler.AddItem).Methods(http.MethodPost)
	authed.HandleFunc("/wishlist/items/{itemId}", wishlistHandler.RemoveItem).Methods(http.MethodDelete)

	authed.HandleFunc("/orders", orderHandler.Checkout).Methods(http.MethodPost)
	authed.HandleFunc("/orders", orderHandler.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/orders/{id}", orderHandler.Get).Methods(http.MethodGet)

	authed.HandleFunc("/products/{id}/reviews", reviewHandler.Create).Methods(http.MethodPost)
	authed.HandleFunc("/payment/process", paymentHandler.Process).Methods(http.MethodPost)

	// Admin routes.
	admin := authed.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.AdminOnly(rnd))

	admin.HandleFunc("/dashboard", dashboardHandler.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/orders", orderHandler.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id}/status", orderHandler.UpdateStatus).Methods(http.MethodPut)
	admin.HandleFunc("/products", productHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id}", productHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id}", productHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/categories", categoryHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id}", categoryHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id}", categoryHandler.Delete).Methods(http.MethodDelete)

	return router
}
