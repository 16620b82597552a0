package usecase

import (
	"venue-booking/internal/data/repository"
	"venue-booking/internal/gateway"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Venue   VenueService
	Booking BookingService
	Payment PaymentService
}

func NewService(repo *repository.Repository, processor gateway.Processor, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Venue:   NewVenueService(repo, log),
		Booking: NewBookingService(repo, log),
		Payment: NewPaymentService(repo, processor, config, log),
	}
}
