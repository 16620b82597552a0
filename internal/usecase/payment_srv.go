package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/dto/response"
	"venue-booking/internal/gateway"
	"venue-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// webhookEventCaptured is the only processor event that settles a booking.
const webhookEventCaptured = "payment.captured"

type PaymentService interface {
	// CreateOrder requests a processor order for a provisional booking. A
	// retry reuses the booking's existing order instead of creating a
	// duplicate.
	CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.OrderResponse, error)

	// ConfirmByRedirect finalizes the redirect flow: recompute-and-compare
	// signature, confirm capture with the processor, then settle.
	ConfirmByRedirect(ctx context.Context, req *request.VerifyPaymentRequest) (*response.PaymentStatusResponse, error)

	// PollStatus is one polling attempt: settled if the booking is paid or
	// the processor shows a captured payment for the order, else pending.
	PollStatus(ctx context.Context, bookingID, orderID string) (*response.PaymentStatusResponse, error)

	// AwaitSettlement runs the bounded polling loop (interval x attempts
	// from config) and ends in exactly one of: settled, ErrPollTimeout, or
	// a terminal settlement error. Timing out has no side effects.
	AwaitSettlement(ctx context.Context, bookingID, orderID string) (*response.PaymentStatusResponse, error)

	// HandleWebhookEvent verifies the raw-body webhook signature and
	// settles on a captured-payment event. Safe to deliver more than once.
	HandleWebhookEvent(ctx context.Context, body []byte, signature string) error
}

type paymentService struct {
	repo         *repository.Repository
	processor    gateway.Processor
	pollInterval time.Duration
	pollAttempts int
	log          *zap.Logger
}

func NewPaymentService(repo *repository.Repository, processor gateway.Processor, config *utils.Config, log *zap.Logger) PaymentService {
	return &paymentService{
		repo:         repo,
		processor:    processor,
		pollInterval: time.Duration(config.Payment.PollIntervalSeconds) * time.Second,
		pollAttempts: config.Payment.PollMaxAttempts,
		log:          log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	booking, err := s.findBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserID != userUUID {
		return nil, fmt.Errorf("unauthorized to pay for booking %s", req.BookingID)
	}

	if booking.IsPaid {
		return nil, fmt.Errorf("booking %s is already paid", req.BookingID)
	}

	// A booking holds at most one processor order for its lifetime.
	if booking.OrderID != "" {
		s.log.Info("Reusing existing payment order",
			zap.String("booking_id", req.BookingID),
			zap.String("order_id", booking.OrderID),
		)
		return &response.OrderResponse{
			BookingID: req.BookingID,
			OrderID:   booking.OrderID,
			Amount:    booking.AmountMinorUnits(),
			Currency:  s.processor.Currency(),
			ClientKey: s.processor.ClientKey(),
		}, nil
	}

	order, err := s.processor.CreateOrder(ctx, req.BookingID, booking.AmountMinorUnits())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Booking.AttachOrder(ctx, booking.ID, order.ID); err != nil {
		// A concurrent request may have attached its order between our read
		// and this write. The booking keeps one order for life, so serve the
		// attached one; ours is abandoned and expires at the processor.
		current, findErr := s.repo.Booking.FindByID(ctx, booking.ID)
		if findErr == nil && current != nil && current.OrderID != "" {
			s.log.Info("Lost order-attach race, reusing attached order",
				zap.String("booking_id", req.BookingID),
				zap.String("order_id", current.OrderID),
				zap.String("abandoned_order_id", order.ID),
			)
			return &response.OrderResponse{
				BookingID: req.BookingID,
				OrderID:   current.OrderID,
				Amount:    current.AmountMinorUnits(),
				Currency:  s.processor.Currency(),
				ClientKey: s.processor.ClientKey(),
			}, nil
		}
		return nil, fmt.Errorf("attach order: %w", err)
	}

	return &response.OrderResponse{
		BookingID: req.BookingID,
		OrderID:   order.ID,
		Amount:    order.Amount,
		Currency:  order.Currency,
		ClientKey: s.processor.ClientKey(),
	}, nil
}

func (s *paymentService) ConfirmByRedirect(ctx context.Context, req *request.VerifyPaymentRequest) (*response.PaymentStatusResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Confirm payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking, err := s.findBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	// Hard, unconditional rejection on mismatch. Log without the signature
	// or secret material.
	if !s.processor.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		s.log.Warn("Payment signature mismatch",
			zap.String("booking_id", req.BookingID),
			zap.String("order_id", req.RazorpayOrderID),
			zap.String("payment_id", req.RazorpayPaymentID),
		)
		return nil, entity.ErrInvalidSignature
	}

	// The order id must be the one this booking was tagged with; client
	// claims are never trusted for correlation.
	if booking.OrderID == "" || booking.OrderID != req.RazorpayOrderID {
		s.log.Warn("Order does not belong to booking",
			zap.String("booking_id", req.BookingID),
			zap.String("order_id", req.RazorpayOrderID),
		)
		return nil, entity.ErrInvalidSignature
	}

	// Signature alone is not proof of capture; ask the processor.
	payment, err := s.processor.FetchPayment(ctx, req.RazorpayPaymentID)
	if err != nil {
		return nil, err
	}
	if payment.OrderID != booking.OrderID {
		return nil, entity.ErrInvalidSignature
	}
	if !payment.Captured() {
		return nil, fmt.Errorf("%w: payment %s status %s", entity.ErrPaymentNotCaptured, payment.ID, payment.Status)
	}

	if err := s.settle(ctx, booking.ID, payment.ID, payment.Method); err != nil {
		return nil, err
	}

	return &response.PaymentStatusResponse{
		BookingID: req.BookingID,
		OrderID:   booking.OrderID,
		Status:    response.PaymentStatusSettled,
		PaymentID: &payment.ID,
	}, nil
}

func (s *paymentService) PollStatus(ctx context.Context, bookingID, orderID string) (*response.PaymentStatusResponse, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.IsPaid {
		return &response.PaymentStatusResponse{
			BookingID: bookingID,
			OrderID:   booking.OrderID,
			Status:    response.PaymentStatusSettled,
			PaymentID: booking.PaymentID,
		}, nil
	}

	if booking.OrderID == "" || booking.OrderID != orderID {
		return nil, fmt.Errorf("order %s does not match booking %s", orderID, bookingID)
	}

	payments, err := s.processor.FetchPaymentsForOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	for _, payment := range payments {
		if payment.Captured() {
			if err := s.settle(ctx, booking.ID, payment.ID, payment.Method); err != nil {
				return nil, err
			}
			return &response.PaymentStatusResponse{
				BookingID: bookingID,
				OrderID:   orderID,
				Status:    response.PaymentStatusSettled,
				PaymentID: &payment.ID,
			}, nil
		}
	}

	return &response.PaymentStatusResponse{
		BookingID: bookingID,
		OrderID:   orderID,
		Status:    response.PaymentStatusPending,
	}, nil
}

func (s *paymentService) AwaitSettlement(ctx context.Context, bookingID, orderID string) (*response.PaymentStatusResponse, error) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for attempt := 1; attempt <= s.pollAttempts; attempt++ {
		status, err := s.PollStatus(ctx, bookingID, orderID)
		switch {
		case err == nil:
			if status.Status == response.PaymentStatusSettled {
				return status, nil
			}
		case errors.Is(err, entity.ErrGatewayUnavailable):
			// Transient; the remaining attempts are the retry budget.
			s.log.Warn("Poll attempt failed, gateway unavailable",
				zap.String("booking_id", bookingID),
				zap.Int("attempt", attempt),
			)
		default:
			return nil, err
		}

		if attempt == s.pollAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	s.log.Warn("Payment polling budget exhausted",
		zap.String("booking_id", bookingID),
		zap.String("order_id", orderID),
		zap.Int("attempts", s.pollAttempts),
	)
	return nil, entity.ErrPollTimeout
}

// webhookEvent is the typed shape of the processor's push. Only the fields
// this service acts on are declared; everything else is ignored.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
				Method  string `json:"method"`
				Notes   struct {
					BookingID string `json:"booking_id"`
				} `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

func (s *paymentService) HandleWebhookEvent(ctx context.Context, body []byte, signature string) error {
	// The signature covers the raw body with the webhook secret, distinct
	// from the per-payment secret. This flow is the only one that can
	// finalize after the customer's session is gone.
	if !s.processor.VerifyWebhookSignature(body, signature) {
		s.log.Warn("Webhook signature mismatch")
		return entity.ErrInvalidSignature
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: malformed webhook payload: %v", entity.ErrInvalidSignature, err)
	}

	if event.Event != webhookEventCaptured {
		s.log.Info("Ignoring webhook event", zap.String("event", event.Event))
		return nil
	}

	payment := event.Payload.Payment.Entity
	bookingID, err := uuid.Parse(payment.Notes.BookingID)
	if err != nil {
		s.log.Warn("Webhook payment has no usable booking reference",
			zap.String("payment_id", payment.ID),
			zap.String("order_id", payment.OrderID),
		)
		return fmt.Errorf("%w: webhook booking reference %q", entity.ErrBookingNotFound, payment.Notes.BookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("find booking %s: %w", bookingID.String(), err)
	}
	if booking == nil {
		return fmt.Errorf("%w: %s", entity.ErrBookingNotFound, bookingID.String())
	}

	// Correlate on the order the booking was tagged with, not on payload
	// claims alone.
	if booking.OrderID == "" || booking.OrderID != payment.OrderID {
		s.log.Warn("Webhook order does not belong to booking",
			zap.String("booking_id", bookingID.String()),
			zap.String("order_id", payment.OrderID),
		)
		return entity.ErrInvalidSignature
	}

	return s.settle(ctx, bookingID, payment.ID, payment.Method)
}

// settle funnels every confirmation path through the single settlement
// authority. Observing an already-paid booking is success, not an error:
// confirmation delivery is at-least-once by design.
func (s *paymentService) settle(ctx context.Context, bookingID uuid.UUID, paymentID, method string) error {
	settledNow, err := s.repo.Booking.Settle(ctx, bookingID, paymentID, method)
	if err != nil {
		if errors.Is(err, entity.ErrSlotAlreadySold) {
			// Never silently absorbed: the customer's money may be in
			// flight toward a slot someone else now owns.
			s.log.Warn("Settlement lost the slot race",
				zap.String("booking_id", bookingID.String()),
				zap.String("payment_id", paymentID),
			)
		}
		return err
	}

	if settledNow {
		s.log.Info("Booking settled",
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_id", paymentID),
			zap.String("method", method),
		)
	} else {
		s.log.Info("Booking already settled, confirmation replay ignored",
			zap.String("booking_id", bookingID.String()),
			zap.String("payment_id", paymentID),
		)
	}

	return nil
}

func (s *paymentService) findBooking(ctx context.Context, bookingID string) (*entity.Booking, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrBookingNotFound, bookingID)
	}

	return booking, nil
}
