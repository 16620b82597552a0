package repository

import (
	"venue-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Venue   VenueRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Venue:   NewVenueRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
