package usecase

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VenueService interface {
	GetVenue(ctx context.Context, venueID string) (*response.VenueResponse, error)

	// GetAvailability derives the open slots for a venue/date: every hourly
	// label within opening hours minus the slots of paid bookings. It is a
	// read-only recomputation, never independently mutated; provisional
	// holds do not reduce availability.
	GetAvailability(ctx context.Context, venueID, playDate string) (*response.AvailabilityResponse, error)
}

type venueService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVenueService(repo *repository.Repository, log *zap.Logger) VenueService {
	return &venueService{
		repo: repo,
		log:  log.With(zap.String("service", "venue")),
	}
}

func (s *venueService) GetVenue(ctx context.Context, venueID string) (*response.VenueResponse, error) {
	venue, err := s.findVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	resp := response.VenueToResponse(venue)
	return &resp, nil
}

func (s *venueService) GetAvailability(ctx context.Context, venueID, playDate string) (*response.AvailabilityResponse, error) {
	venue, err := s.findVenue(ctx, venueID)
	if err != nil {
		return nil, err
	}

	openSlots, err := entity.HoursBetween(venue.OpenTime, venue.CloseTime)
	if err != nil {
		s.log.Error("Venue has invalid opening hours",
			zap.Error(err),
			zap.String("venue_id", venueID),
		)
		return nil, fmt.Errorf("venue %s opening hours: %w", venueID, err)
	}

	paidSlots, err := s.repo.Booking.FindPaidSlots(ctx, venue.ID, playDate)
	if err != nil {
		return nil, fmt.Errorf("get availability for venue %s on %s: %w", venueID, playDate, err)
	}

	taken := make(map[string]struct{}, len(paidSlots))
	for _, label := range paidSlots {
		taken[label] = struct{}{}
	}

	available := make([]string, 0, len(openSlots))
	for _, label := range openSlots {
		if _, sold := taken[label]; !sold {
			available = append(available, label)
		}
	}

	s.log.Info("Availability computed",
		zap.String("venue_id", venueID),
		zap.String("play_date", playDate),
		zap.Int("open_slots", len(openSlots)),
		zap.Int("available_slots", len(available)),
	)

	return &response.AvailabilityResponse{
		VenueID:        venueID,
		PlayDate:       playDate,
		PricePerHour:   venue.PricePerHour,
		AvailableSlots: available,
	}, nil
}

func (s *venueService) findVenue(ctx context.Context, venueID string) (*entity.Venue, error) {
	id, err := uuid.Parse(venueID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID format %s: %w", venueID, err)
	}

	venue, err := s.repo.Venue.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find venue %s: %w", venueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrVenueNotFound, venueID)
	}

	return venue, nil
}
