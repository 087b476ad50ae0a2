package handlers

import (
	"net/http"

	"github.com/davrk/go-storefront/app/helpers"
	"github.com/davrk/go-storefront/app/services"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type DashboardHandler struct {
	render    *render.Render
	reportSvc *services.ReportService
	logger    zerolog.Logger
}

func NewDashboardHandler(rnd *render.Render, reportSvc *services.ReportService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{render: rnd, reportSvc: reportSvc, logger: logger}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportSvc.Dashboard(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build dashboard stats")
		helpers.RespondError(h.render, w, http.StatusInternalServerError, "internal server error")
		return
	}
	_ = h.render.JSON(w, http.StatusOK, stats)
}
