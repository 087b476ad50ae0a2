package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/davrk/go-storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render      *render.Render
	store       repositories.Store
	checkoutSvc *services.CheckoutService
	validator   *validator.Validate
	logger      zerolog.Logger
}

func NewOrderHandler(rnd *render.Render, store repositories.Store, checkoutSvc *services.CheckoutService, v *validator.Validate, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		render:      rnd,
		store:       store,
		checkoutSvc: checkoutSvc,
		validator:   v,
		logger:      logger,
	}
}

// CheckoutRequest is the order submission payload. Card fields are only
// required when the payment method is card; cash-on-delivery skips them.
type CheckoutRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Address1      string `json:"address1" validate:"required"`
	Address2      string `json:"address2"`
	City          string `json:"city" validate:"required"`
	PostCode      string `json:"post_code" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=card cod"`

	CardNumber string `json:"card_number" validate:"required_if=PaymentMethod card"`
	CardExpiry string `json:"card_expiry" validate:"required_if=PaymentMethod card"`
	CardCVC    string `json:"card_cvc" validate:"required_if=PaymentMethod card"`
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	order, err := h.checkoutSvc.PlaceOrder(r.Context(), user, services.CheckoutInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address1:      req.Address1,
		Address2:      req.Address2,
		City:          req.City,
		PostCode:      req.PostCode,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			helpers.RespondError(h.render, w, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrInsufficientStock):
			helpers.RespondError(h.render, w, http.StatusConflict, err.Error())
		default:
			h.logger.Error().Err(err).Msg("checkout failed")
			helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	orders, err := h.store.Orders().FindByUserID(r.Context(), user.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list orders")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// Get returns one order. Customers may only read their own orders; admins
// may read any.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	order, err := h.store.Orders().GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load order")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "order not found")
		return
	}
	if order.UserID != user.ID && !user.IsAdmin() {
		helpers.RespondError(h.render, w, http.StatusForbidden, "forbidden")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.store.Orders().GetAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list orders")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus moves an order along its lifecycle. Illegal jumps (for
// example shipped back to pending) are rejected.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "unknown order status")
		return
	}

	order, err := h.store.Orders().GetByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load order")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "order not found")
		return
	}
	if !models.CanTransition(order.Status, req.Status) {
		helpers.RespondError(h.render, w, http.StatusBadRequest,
			"cannot transition order from "+order.Status+" to "+req.Status)
		return
	}

	if err := h.store.Orders().UpdateStatus(r.Context(), order.ID, req.Status); err != nil {
		h.logger.Error().Err(err).Msg("failed to update order status")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	order.Status = req.Status
	_ = h.render.JSON(w, http.StatusOK, order)
}
