package wire

import (
	"venue-booking/internal/adaptor"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/booking - Reserve slots (provisional booking)
		r.Post("/api/booking", bookingHandler.CreateBooking)

		// GET /api/user/bookings - View booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})
}
