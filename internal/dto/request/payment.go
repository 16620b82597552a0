package request

type CreateOrderRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid4"`
}

// VerifyPaymentRequest carries the redirect-flow fields the checkout UI
// posts back after payment. The signature is never trusted as-is; it is
// recomputed server-side over orderId|paymentId.
type VerifyPaymentRequest struct {
	BookingID         string `json:"booking_id" validate:"required,uuid4"`
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}
