package wire

import (
	"venue-booking/internal/adaptor"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVenue(
	r chi.Router,
	venueHandler *adaptor.VenueHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/venues/{id} - Venue details (public)
	r.Get("/api/venues/{id}", venueHandler.GetVenue)

	// GET /api/venues/{id}/slots - Slot availability (public)
	// Requires query param: ?date=2026-09-01
	r.Get("/api/venues/{id}/slots", venueHandler.GetAvailability)
}
