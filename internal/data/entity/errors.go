package entity

import "errors"

// Sentinel errors shared across services and handlers. Handlers map these to
// HTTP status codes with errors.Is.
var (
	ErrVenueNotFound   = errors.New("venue not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotConflict means the requested slots already belong to a paid
	// booking. Recoverable: re-fetch availability and pick again.
	ErrSlotConflict = errors.New("slot already booked")

	// ErrInvalidSlotSelection covers empty, duplicate, non-contiguous or
	// outside-opening-hours slot sets.
	ErrInvalidSlotSelection = errors.New("invalid slot selection")

	// ErrPastDate rejects reservations for dates before today.
	ErrPastDate = errors.New("cannot book for a past date")

	// ErrSlotAlreadySold is the settlement-time loss: another booking paid
	// for an overlapping slot first. The customer's payment may be in
	// flight, so this routes to the refund path.
	ErrSlotAlreadySold = errors.New("slot already sold to another booking")

	// ErrInvalidSignature is a hard rejection of a confirmation attempt.
	// Never finalize on it.
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrGatewayUnavailable wraps payment processor failures. Recoverable:
	// retry reuses the existing provisional booking.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrPollTimeout means the bounded polling budget ran out before the
	// processor confirmed capture. The booking stays provisional.
	ErrPollTimeout = errors.New("payment status polling timed out")

	// ErrPaymentNotCaptured means the processor knows the payment but has
	// not captured it yet.
	ErrPaymentNotCaptured = errors.New("payment not captured")
)
