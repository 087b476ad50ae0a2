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

type ReviewHandler struct {
	render    *render.Render
	reviewSvc *services.ReviewService
	validator *validator.Validate
	logger    zerolog.Logger
}

func NewReviewHandler(rnd *render.Render, reviewSvc *services.ReviewService, v *validator.Validate, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		render:    rnd,
		reviewSvc: reviewSvc,
		validator: v,
		logger:    logger,
	}
}

func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewSvc.ListByProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			helpers.RespondError(h.render, w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("failed to list reviews")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := helpers.PrincipalFromRequest(r)

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	review, err := h.reviewSvc.Create(r.Context(), user.ID, mux.Vars(r)["id"], req.Rating, req.Comment)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			helpers.RespondError(h.render, w, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error().Err(err).Msg("failed to create review")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, review)
}
