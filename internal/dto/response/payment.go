package response

// Payment status values surfaced to polling clients.
const (
	PaymentStatusPending = "pending"
	PaymentStatusSettled = "settled"
)

type OrderResponse struct {
	BookingID string `json:"booking_id"`
	OrderID   string `json:"order_id"`
	Amount    int64  `json:"amount"` // minor units
	Currency  string `json:"currency"`
	ClientKey string `json:"client_key"` // publishable key for the checkout UI
}

type PaymentStatusResponse struct {
	BookingID string  `json:"booking_id"`
	OrderID   string  `json:"order_id"`
	Status    string  `json:"status"`
	PaymentID *string `json:"payment_id,omitempty"`
}
