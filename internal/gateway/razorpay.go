package gateway

import (
	"context"
	"fmt"

	"venue-booking/internal/data/entity"

	razorpay "github.com/razorpay/razorpay-go"
	rputils "github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"
)

// Order is the processor-issued payment order for one booking.
type Order struct {
	ID       string
	Amount   int64 // minor units (paise)
	Currency string
}

// Payment is the processor's view of a payment attempt.
type Payment struct {
	ID      string
	OrderID string
	Status  string
	Method  string
	Amount  int64
}

const paymentStatusCaptured = "captured"

// Captured reports whether the processor has captured the funds. Only
// captured payments may settle a booking.
func (p *Payment) Captured() bool {
	return p.Status == paymentStatusCaptured
}

// Processor abstracts the payment processor: order creation, payment lookup
// and the two signature checks (per-payment and webhook, distinct secrets).
type Processor interface {
	CreateOrder(ctx context.Context, bookingID string, amountMinor int64) (*Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*Payment, error)
	FetchPaymentsForOrder(ctx context.Context, orderID string) ([]*Payment, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
	VerifyWebhookSignature(body []byte, signature string) bool
	ClientKey() string
	Currency() string
}

type razorpayProcessor struct {
	client        *razorpay.Client
	keyID         string
	keySecret     string
	webhookSecret string
	currency      string
	log           *zap.Logger
}

// NewRazorpayProcessor builds the live processor client. The key secret
// signs per-payment redirects; the webhook secret signs raw webhook bodies.
func NewRazorpayProcessor(keyID, keySecret, webhookSecret, currency string, log *zap.Logger) Processor {
	return &razorpayProcessor{
		client:        razorpay.NewClient(keyID, keySecret),
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
		currency:      currency,
		log:           log.With(zap.String("gateway", "razorpay")),
	}
}

// CreateOrder requests a processor order tagged with the booking id, both as
// receipt and as notes metadata, so confirmation events correlate back
// without trusting client-supplied identifiers.
func (p *razorpayProcessor) CreateOrder(_ context.Context, bookingID string, amountMinor int64) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": p.currency,
		"receipt":  bookingID,
		"notes": map[string]interface{}{
			"booking_id": bookingID,
		},
	}

	body, err := p.client.Order.Create(data, nil)
	if err != nil {
		p.log.Error("Order create failed",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.Int64("amount", amountMinor),
		)
		return nil, fmt.Errorf("%w: create order for booking %s: %v", entity.ErrGatewayUnavailable, bookingID, err)
	}

	orderID, _ := body["id"].(string)
	if orderID == "" {
		return nil, fmt.Errorf("%w: order create returned no id", entity.ErrGatewayUnavailable)
	}

	p.log.Info("Payment order created",
		zap.String("booking_id", bookingID),
		zap.String("order_id", orderID),
		zap.Int64("amount", amountMinor),
		zap.String("currency", p.currency),
	)

	return &Order{
		ID:       orderID,
		Amount:   amountMinor,
		Currency: p.currency,
	}, nil
}

func (p *razorpayProcessor) FetchPayment(_ context.Context, paymentID string) (*Payment, error) {
	body, err := p.client.Payment.Fetch(paymentID, nil, nil)
	if err != nil {
		p.log.Error("Payment fetch failed",
			zap.Error(err),
			zap.String("payment_id", paymentID),
		)
		return nil, fmt.Errorf("%w: fetch payment %s: %v", entity.ErrGatewayUnavailable, paymentID, err)
	}

	payment := &Payment{ID: paymentID}
	payment.OrderID, _ = body["order_id"].(string)
	payment.Status, _ = body["status"].(string)
	payment.Method, _ = body["method"].(string)
	if amount, ok := body["amount"].(float64); ok {
		payment.Amount = int64(amount)
	}

	return payment, nil
}

// FetchPaymentsForOrder lists the payment attempts the processor has
// recorded against an order. The polling flow scans these for a captured
// one.
func (p *razorpayProcessor) FetchPaymentsForOrder(_ context.Context, orderID string) ([]*Payment, error) {
	body, err := p.client.Order.Payments(orderID, nil, nil)
	if err != nil {
		p.log.Error("Order payments fetch failed",
			zap.Error(err),
			zap.String("order_id", orderID),
		)
		return nil, fmt.Errorf("%w: fetch payments for order %s: %v", entity.ErrGatewayUnavailable, orderID, err)
	}

	items, _ := body["items"].([]interface{})
	payments := make([]*Payment, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		payment := &Payment{}
		payment.ID, _ = entry["id"].(string)
		payment.OrderID, _ = entry["order_id"].(string)
		payment.Status, _ = entry["status"].(string)
		payment.Method, _ = entry["method"].(string)
		if amount, ok := entry["amount"].(float64); ok {
			payment.Amount = int64(amount)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}

// VerifyPaymentSignature recomputes the signature over orderId|paymentId
// with the key secret and compares exactly. The SDK does the HMAC-SHA256 and
// the constant-time comparison.
func (p *razorpayProcessor) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return rputils.VerifyPaymentSignature(params, signature, p.keySecret)
}

// VerifyWebhookSignature checks the signature over the raw request body with
// the webhook secret, which is independent of the per-payment secret.
func (p *razorpayProcessor) VerifyWebhookSignature(body []byte, signature string) bool {
	return rputils.VerifyWebhookSignature(string(body), signature, p.webhookSecret)
}

// ClientKey is the publishable credential the checkout UI needs.
func (p *razorpayProcessor) ClientKey() string {
	return p.keyID
}

func (p *razorpayProcessor) Currency() string {
	return p.currency
}
