package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type CartHandler struct {
	render    *render.Render
	cartSvc   *services.CartService
	validator *validator.Validate
	logger    zerolog.Logger
}

func NewCartHandler(rnd *render.Render, cartSvc *services.CartService, v *validator.Validate, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		render:    rnd,
		cartSvc:   cartSvc,
		validator: v,
		logger:    logger,
	}
}

func (h *CartHandler) respondCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCartItemNotFound):
		helpers.RespondError(h.render, w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInsufficientStock):
		helpers.RespondError(h.render, w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("cart operation failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	cart, err := h.cartSvc.GetCart(r.Context(), user.ID)
	if err != nil {
		h.respondCartError(w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       int    `json:"qty" validate:"required,gte=1"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	cart, err := h.cartSvc.AddItem(r.Context(), user.ID, req.ProductID, req.Qty)
	if err != nil {
		h.respondCartError(w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

type UpdateCartItemRequest struct {
	Qty int `json:"qty" validate:"required,gte=1"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	var req UpdateCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	cart, err := h.cartSvc.UpdateItemQty(r.Context(), user.ID, mux.Vars(r)["itemId"], req.Qty)
	if err != nil {
		h.respondCartError(w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	cart, err := h.cartSvc.RemoveItem(r.Context(), user.ID, mux.Vars(r)["itemId"])
	if err != nil {
		h.respondCartError(w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, cart)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	if err := h.cartSvc.Clear(r.Context(), user.ID); err != nil {
		h.respondCartError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
