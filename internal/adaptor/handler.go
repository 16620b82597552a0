package adaptor

import (
	"venue-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Venue   *VenueHandler
	Booking *BookingHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Venue:   NewVenueHandler(service.Venue, log),
		Booking: NewBookingHandler(service.Booking, log),
		Payment: NewPaymentHandler(service.Payment, log),
	}
}
