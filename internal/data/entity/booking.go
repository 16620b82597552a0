package entity

import (
	"math"

	"github.com/google/uuid"
)

// Booking is the only shared mutable record in the system. It is created
// provisional (IsPaid=false) at reservation time and becomes terminal when
// settlement flips IsPaid exactly once. Overlapping provisional bookings are
// allowed to coexist; exclusivity is enforced at settlement.
type Booking struct {
	Base
	UserID   uuid.UUID `db:"user_id"`
	VenueID  uuid.UUID `db:"venue_id"`
	PlayDate string    `db:"play_date"` // timezone-naive "YYYY-MM-DD"

	// Slots is the ordered set of contiguous hourly labels. SlotList keeps
	// the same labels as a delimited string for compatibility.
	Slots    []string `db:"slots"`
	SlotList string   `db:"slot_list"`

	TotalAmount float64 `db:"total_amount"` // rupees, unit price x slot count

	IsPaid        bool    `db:"is_paid"`
	OrderID       string  `db:"order_id"` // processor order, empty until createOrder
	PaymentID     *string `db:"payment_id"`
	PaymentMethod *string `db:"payment_method"`
}

// AmountMinorUnits converts the booking total to the processor's minor
// units (paise). Rounded, not truncated: the float product of a
// paise-precision price can land just under the exact value.
func (b *Booking) AmountMinorUnits() int64 {
	return int64(math.Round(b.TotalAmount * 100))
}
