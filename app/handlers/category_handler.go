package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type CategoryHandler struct {
	render       *render.Render
	categoryRepo repositories.CategoryRepositoryImpl
	validator    *validator.Validate
	logger       zerolog.Logger
}

func NewCategoryHandler(rnd *render.Render, categoryRepo repositories.CategoryRepositoryImpl, v *validator.Validate, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		render:       rnd,
		categoryRepo: categoryRepo,
		validator:    v,
		logger:       logger,
	}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("category listing failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

type CategoryRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Slug  string `json:"slug" validate:"omitempty,max=100"`
	Icon  string `json:"icon" validate:"max=100"`
	Image string `json:"image" validate:"max=255"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	ctx := r.Context()

	categorySlug := req.Slug
	if categorySlug == "" {
		categorySlug = slug.Make(req.Name)
	}
	if existing, err := h.categoryRepo.GetBySlug(ctx, categorySlug); err != nil {
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	} else if existing != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "slug is already in use")
		return
	}

	category := &models.Category{
		Name:  req.Name,
		Slug:  categorySlug,
		Icon:  req.Icon,
		Image: req.Image,
	}
	if err := h.categoryRepo.Create(ctx, category); err != nil {
		h.logger.Error().Err(err).Msg("category creation failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, category)
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=100"`
	Slug  *string `json:"slug" validate:"omitempty,max=100"`
	Icon  *string `json:"icon" validate:"omitempty,max=100"`
	Image *string `json:"image" validate:"omitempty,max=255"`
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category, err := h.categoryRepo.GetByID(ctx, mux.Vars(r)["id"])
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if category == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "category not found")
		return
	}

	var req UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Image != nil {
		category.Image = *req.Image
	}

	if err := h.categoryRepo.Update(ctx, category); err != nil {
		h.logger.Error().Err(err).Str("category_id", category.ID).Msg("category update failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(ctx, id)
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if category == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "category not found")
		return
	}

	if err := h.categoryRepo.Delete(ctx, id); err != nil {
		h.logger.Error().Err(err).Str("category_id", id).Msg("category deletion failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
