package usecase

import (
	"context"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Reserve creates a provisional (unpaid) booking for a validated slot
	// set. Overlapping provisional bookings are allowed by design; only the
	// paid set is exclusive, enforced at settlement.
	Reserve(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		log:  log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Reserve(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reserve validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		return nil, fmt.Errorf("invalid venue ID format %s: %w", req.VenueID, err)
	}

	venue, err := s.repo.Venue.FindByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("find venue %s: %w", req.VenueID, err)
	}
	if venue == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrVenueNotFound, req.VenueID)
	}

	// Dates are compared as naive YYYY-MM-DD strings so client and server
	// timezones never drift apart.
	today := time.Now().Format(entity.DateFormat)
	if req.PlayDate < today {
		return nil, fmt.Errorf("%w: %s", entity.ErrPastDate, req.PlayDate)
	}

	slots := entity.SortSlots(req.Slots)
	if !entity.ContiguousSlots(slots) {
		return nil, fmt.Errorf("%w: slots must be a gap-free run of hours", entity.ErrInvalidSlotSelection)
	}

	openSlots, err := entity.HoursBetween(venue.OpenTime, venue.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("venue %s opening hours: %w", req.VenueID, err)
	}

	open := make(map[string]struct{}, len(openSlots))
	for _, label := range openSlots {
		open[label] = struct{}{}
	}
	for _, label := range slots {
		if _, ok := open[label]; !ok {
			return nil, fmt.Errorf("%w: slot %s is outside opening hours", entity.ErrInvalidSlotSelection, label)
		}
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:      userUUID,
		VenueID:     venueID,
		PlayDate:    req.PlayDate,
		Slots:       slots,
		SlotList:    entity.JoinSlots(slots),
		TotalAmount: venue.PricePerHour * float64(len(slots)),
	}

	// The paid-overlap check runs atomically with this insert, so a slot
	// sold between the availability read and now is still rejected.
	if err := s.repo.Booking.CreateProvisional(ctx, booking); err != nil {
		if err == entity.ErrSlotConflict {
			s.log.Warn("Reserve rejected, slot conflict",
				zap.String("venue_id", req.VenueID),
				zap.String("play_date", req.PlayDate),
				zap.Strings("slots", slots),
			)
			return nil, err
		}
		return nil, fmt.Errorf("reserve slots: %w", err)
	}

	s.log.Info("Provisional booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.String("venue_id", req.VenueID),
		zap.String("play_date", req.PlayDate),
		zap.Strings("slots", slots),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking, venue)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		venue, _ := s.repo.Venue.FindByID(ctx, booking.VenueID)
		bookingResponses[i] = response.BookingToResponse(booking, venue)
	}

	s.log.Info("User bookings retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}
