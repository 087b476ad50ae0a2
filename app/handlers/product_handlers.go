package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/models"
	"github.com/davrk/go-storefront/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

const (
	defaultPageLimit = 12
	maxPageLimit     = 100
)

type ProductHandler struct {
	render       *render.Render
	productRepo  repositories.ProductRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	validator    *validator.Validate
	logger       zerolog.Logger
}

func NewProductHandler(rnd *render.Render, productRepo repositories.ProductRepositoryImpl, categoryRepo repositories.CategoryRepositoryImpl, v *validator.Validate, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		render:       rnd,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		validator:    v,
		logger:       logger,
	}
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type ProductListResponse struct {
	Products   []models.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

func parseProductFilter(r *http.Request) repositories.ProductFilter {
	q := r.URL.Query()

	filter := repositories.ProductFilter{
		CategorySlug: q.Get("category"),
		Search:       q.Get("search"),
		SortBy:       q.Get("sortBy"),
		SortOrder:    q.Get("sortOrder"),
		Page:         1,
		Limit:        defaultPageLimit,
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
		filter.Limit = limit
	}

	if v := q.Get("featured"); v != "" {
		b := v == "true" || v == "1"
		filter.Featured = &b
	}
	if v := q.Get("new"); v != "" {
		b := v == "true" || v == "1"
		filter.New = &b
	}
	if v := q.Get("onSale"); v != "" {
		b := v == "true" || v == "1"
		filter.OnSale = &b
	}
	if v := q.Get("minPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MinPrice = &d
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filter.MaxPrice = &d
		}
	}

	return filter
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseProductFilter(r)

	products, total, err := h.productRepo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("product listing failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	_ = h.render.JSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Pagination: Pagination{
			Total:      total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			TotalPages: totalPages,
		},
	})
}

func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.productRepo.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.logger.Error().Err(err).Msg("product lookup failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if product == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "product not found")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, product)
}

type CreateProductRequest struct {
	Name           string           `json:"name" validate:"required,min=2,max=255"`
	Slug           string           `json:"slug" validate:"omitempty,max=255"`
	Sku            string           `json:"sku" validate:"max=100"`
	Description    string           `json:"description"`
	Brand          string           `json:"brand" validate:"max=100"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	Stock          int              `json:"stock" validate:"gte=0"`
	Image          string           `json:"image" validate:"max=255"`
	CategoryID     string           `json:"category_id" validate:"required"`
	IsNew          bool             `json:"is_new"`
	IsFeatured     bool             `json:"is_featured"`
	IsOnSale       bool             `json:"is_on_sale"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}
	if req.Price.IsNegative() {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "price must not be negative")
		return
	}

	ctx := r.Context()

	category, err := h.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		h.logger.Error().Err(err).Msg("category lookup failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if category == nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "unknown category")
		return
	}

	productSlug := req.Slug
	if productSlug == "" {
		productSlug = slug.Make(req.Name)
	}
	if existing, err := h.productRepo.GetBySlug(ctx, productSlug); err != nil {
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	} else if existing != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "slug is already in use")
		return
	}

	product := &models.Product{
		Name:           req.Name,
		Slug:           productSlug,
		Sku:            req.Sku,
		Description:    req.Description,
		Brand:          req.Brand,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Stock:          req.Stock,
		Image:          req.Image,
		CategoryID:     req.CategoryID,
		IsNew:          req.IsNew,
		IsFeatured:     req.IsFeatured,
		IsOnSale:       req.IsOnSale,
	}
	if err := h.productRepo.Create(ctx, product); err != nil {
		h.logger.Error().Err(err).Msg("product creation failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, product)
}

type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=2,max=255"`
	Slug           *string          `json:"slug" validate:"omitempty,max=255"`
	Sku            *string          `json:"sku" validate:"omitempty,max=100"`
	Description    *string          `json:"description"`
	Brand          *string          `json:"brand" validate:"omitempty,max=100"`
	Price          *decimal.Decimal `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price"`
	Stock          *int             `json:"stock" validate:"omitempty,gte=0"`
	Image          *string          `json:"image" validate:"omitempty,max=255"`
	CategoryID     *string          `json:"category_id"`
	IsNew          *bool            `json:"is_new"`
	IsFeatured     *bool            `json:"is_featured"`
	IsOnSale       *bool            `json:"is_on_sale"`
}

// Update is a partial merge: only the fields present in the request body
// overwrite the stored record.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product, err := h.productRepo.GetByID(ctx, mux.Vars(r)["id"])
	if err != nil {
		h.logger.Error().Err(err).Msg("product lookup failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if product == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "product not found")
		return
	}

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}
	if req.Price != nil && req.Price.IsNegative() {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "price must not be negative")
		return
	}

	if req.CategoryID != nil {
		category, err := h.categoryRepo.GetByID(ctx, *req.CategoryID)
		if err != nil {
			helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
			return
		}
		if category == nil {
			helpers.RespondError(h.render, w, http.StatusBadRequest, "unknown category")
			return
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Sku != nil {
		product.Sku = *req.Sku
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		product.CompareAtPrice = req.CompareAtPrice
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsOnSale != nil {
		product.IsOnSale = *req.IsOnSale
	}

	if err := h.productRepo.Update(ctx, product); err != nil {
		h.logger.Error().Err(err).Str("product_id", product.ID).Msg("product update failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	_ = h.render.JSON(w, http.StatusOK, product)
}

// Delete removes the product unconditionally. Orders keep their snapshots,
// so no cascade is needed.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(ctx, id)
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	if product == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "product not found")
		return
	}

	if err := h.productRepo.Delete(ctx, id); err != nil {
		h.logger.Error().Err(err).Str("product_id", id).Msg("product deletion failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
