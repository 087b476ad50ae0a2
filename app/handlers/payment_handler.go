package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type PaymentHandler struct {
	render     *render.Render
	paymentSvc *services.PaymentService
	validator  *validator.Validate
	logger     zerolog.Logger
}

func NewPaymentHandler(rnd *render.Render, paymentSvc *services.PaymentService, v *validator.Validate, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		render:     rnd,
		paymentSvc: paymentSvc,
		validator:  v,
		logger:     logger,
	}
}

type ProcessPaymentRequest struct {
	Amount string `json:"amount" validate:"required"`
	Method string `json:"method" validate:"required,oneof=card cod"`
}

// Process runs a standalone simulated authorization. Checkout calls the
// payment service directly; this endpoint exists for clients that authorize
// before submitting the order.
func (h *PaymentHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		helpers.RespondFieldErrors(h.render, w, helpers.FormatValidationErrors(err.(validator.ValidationErrors)))
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "invalid amount")
		return
	}

	result, err := h.paymentSvc.Process(r.Context(), amount, req.Method)
	if err != nil {
		h.logger.Error().Err(err).Msg("payment processing failed")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, result)
}
