package adaptor

import (
	"errors"
	"net/http"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VenueHandler struct {
	service usecase.VenueService
	log     *zap.Logger
}

func NewVenueHandler(service usecase.VenueService, log *zap.Logger) *VenueHandler {
	return &VenueHandler{
		service: service,
		log:     log.With(zap.String("handler", "venue")),
	}
}

// GetVenue handles GET /api/venues/{id} (public)
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	venue, err := h.service.GetVenue(r.Context(), venueID)
	if err != nil {
		h.handleServiceError(w, err, "get venue")
		return
	}

	utils.ResponseSuccess(w, "success", venue)
}

// GetAvailability handles GET /api/venues/{id}/slots?date=2026-09-01 (public)
func (h *VenueHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "id")
	if venueID == "" {
		utils.ResponseBadRequest(w, "Venue ID is required", nil)
		return
	}

	playDate := r.URL.Query().Get("date")
	if playDate == "" {
		utils.ResponseBadRequest(w, "date query parameter is required (YYYY-MM-DD)", nil)
		return
	}

	availability, err := h.service.GetAvailability(r.Context(), venueID, playDate)
	if err != nil {
		h.handleServiceError(w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

func (h *VenueHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrVenueNotFound):
		h.log.Warn(operation+" failed - venue not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
