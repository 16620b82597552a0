package usecase

import (
	"context"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockVenueRepo struct {
	mock.Mock
}

func (m *mockVenueRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Venue, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Venue), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) CreateProvisional(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*entity.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, userID, limit, offset)
	if v := args.Get(0); v != nil {
		return v.([]*entity.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) FindPaidSlots(ctx context.Context, venueID uuid.UUID, playDate string) ([]string, error) {
	args := m.Called(ctx, venueID, playDate)
	if v := args.Get(0); v != nil {
		return v.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) AttachOrder(ctx context.Context, bookingID uuid.UUID, orderID string) error {
	args := m.Called(ctx, bookingID, orderID)
	return args.Error(0)
}

func (m *mockBookingRepo) Settle(ctx context.Context, bookingID uuid.UUID, paymentID, method string) (bool, error) {
	args := m.Called(ctx, bookingID, paymentID, method)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) PurgeProvisionalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) CreateOrder(ctx context.Context, bookingID string, amountMinor int64) (*gateway.Order, error) {
	args := m.Called(ctx, bookingID, amountMinor)
	if v := args.Get(0); v != nil {
		return v.(*gateway.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProcessor) FetchPayment(ctx context.Context, paymentID string) (*gateway.Payment, error) {
	args := m.Called(ctx, paymentID)
	if v := args.Get(0); v != nil {
		return v.(*gateway.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProcessor) FetchPaymentsForOrder(ctx context.Context, orderID string) ([]*gateway.Payment, error) {
	args := m.Called(ctx, orderID)
	if v := args.Get(0); v != nil {
		return v.([]*gateway.Payment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProcessor) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	args := m.Called(orderID, paymentID, signature)
	return args.Bool(0)
}

func (m *mockProcessor) VerifyWebhookSignature(body []byte, signature string) bool {
	args := m.Called(body, signature)
	return args.Bool(0)
}

func (m *mockProcessor) ClientKey() string {
	args := m.Called()
	return args.String(0)
}

func (m *mockProcessor) Currency() string {
	args := m.Called()
	return args.String(0)
}

func newTestRepo(venue *mockVenueRepo, booking *mockBookingRepo) *repository.Repository {
	return &repository.Repository{
		Venue:   venue,
		Booking: booking,
	}
}
