package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type WishlistHandler struct {
	render    *render.Render
	store     repositories.Store
	validator *validator.Validate
	logger    zerolog.Logger
}

func NewWishlistHandler(rnd *render.Render, store repositories.Store, v *validator.Validate, logger zerolog.Logger) *WishlistHandler {
	return &WishlistHandler{
		render:    rnd,
		store:     store,
		validator: v,
		logger:    logger,
	}
}

func (h *WishlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	wl, err := h.store.Wishlists().GetOrCreateByUserID(r.Context(), user.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load wishlist")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	wl, err = h.store.Wishlists().GetWithItems(r.Context(), wl.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load wishlist items")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, wl)
}

type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// AddItem is idempotent: adding a product already on the wishlist returns
// the existing item.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	var req AddWishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	product, err := h.store.Products().GetByID(r.Context(), req.ProductID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load product")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if product == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "product not found")
		return
	}

	wl, err := h.store.Wishlists().GetOrCreateByUserID(r.Context(), user.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load wishlist")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	existing, err := h.store.Wishlists().GetItem(r.Context(), wl.ID, product.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to check wishlist item")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if existing != nil {
		_ = h.render.JSON(w, http.StatusOK, existing)
		return
	}

	item := &models.WishlistItem{
		WishlistID: wl.ID,
		ProductID:  product.ID,
	}
	if err := h.store.Wishlists().AddItem(r.Context(), item); err != nil {
		h.logger.Error().Err(err).Msg("failed to add wishlist item")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, item)
}

func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	item, err := h.store.Wishlists().GetItemByID(r.Context(), mux.Vars(r)["itemId"])
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load wishlist item")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if item == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "wishlist item not found")
		return
	}

	wl, err := h.store.Wishlists().GetOrCreateByUserID(r.Context(), user.ID)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load wishlist")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if item.WishlistID != wl.ID {
		helpers.RespondError(h.render, w, http.StatusNotFound, "wishlist item not found")
		return
	}

	if err := h.store.Wishlists().DeleteItem(r.Context(), item.ID); err != nil {
		h.logger.Error().Err(err).Msg("failed to remove wishlist item")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
