package response

import (
	"time"

	"venue-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	VenueID       string    `json:"venue_id"`
	VenueName     string    `json:"venue_name,omitempty"`
	PlayDate      string    `json:"play_date"`
	Slots         []string  `json:"slots"`
	SlotList      string    `json:"slot_list"`
	TotalAmount   float64   `json:"total_amount"`
	IsPaid        bool      `json:"is_paid"`
	OrderID       string    `json:"order_id,omitempty"`
	PaymentID     *string   `json:"payment_id,omitempty"`
	PaymentMethod *string   `json:"payment_method,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// BookingToResponse converts a booking entity; venue may be nil when the
// caller did not resolve it.
func BookingToResponse(booking *entity.Booking, venue *entity.Venue) BookingResponse {
	resp := BookingResponse{
		ID:            booking.ID.String(),
		UserID:        booking.UserID.String(),
		VenueID:       booking.VenueID.String(),
		PlayDate:      booking.PlayDate,
		Slots:         booking.Slots,
		SlotList:      booking.SlotList,
		TotalAmount:   booking.TotalAmount,
		IsPaid:        booking.IsPaid,
		OrderID:       booking.OrderID,
		PaymentID:     booking.PaymentID,
		PaymentMethod: booking.PaymentMethod,
		CreatedAt:     booking.CreatedAt,
	}

	if venue != nil {
		resp.VenueName = venue.Name
	}

	return resp
}
