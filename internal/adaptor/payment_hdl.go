package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

// webhookSignatureHeader carries the processor's signature over the raw
// request body.
const webhookSignatureHeader = "X-Razorpay-Signature"

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// CreateOrder handles POST /api/payments/order (protected)
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create order")
		return
	}

	utils.ResponseCreated(w, "success", order)
}

// VerifyPayment handles POST /api/payments/verify (protected) - the
// redirect flow callback from the checkout UI.
func (h *PaymentHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	status, err := h.service.ConfirmByRedirect(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "verify payment")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// PollStatus handles GET /api/payments/status?booking_id=&order_id=
// (protected) - one attempt of the polling flow.
func (h *PaymentHandler) PollStatus(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	bookingID := query.Get("booking_id")
	orderID := query.Get("order_id")
	if bookingID == "" || orderID == "" {
		utils.ResponseBadRequest(w, "booking_id and order_id query parameters are required", nil)
		return
	}

	status, err := h.service.PollStatus(r.Context(), bookingID, orderID)
	if err != nil {
		h.handleServiceError(w, err, "poll payment status")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// WaitForPayment handles GET /api/payments/wait?booking_id=&order_id=
// (protected) - the bounded polling loop for QR-based payments. Holds the
// request open until settled or the attempt budget runs out.
func (h *PaymentHandler) WaitForPayment(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	bookingID := query.Get("booking_id")
	orderID := query.Get("order_id")
	if bookingID == "" || orderID == "" {
		utils.ResponseBadRequest(w, "booking_id and order_id query parameters are required", nil)
		return
	}

	status, err := h.service.AwaitSettlement(r.Context(), bookingID, orderID)
	if err != nil {
		h.handleServiceError(w, err, "wait for payment")
		return
	}

	utils.ResponseSuccess(w, "success", status)
}

// HandleWebhook handles POST /api/payments/webhook (public, authenticated
// by the body signature). The response status tells the processor whether
// to retry: 2xx stops retries, 4xx/5xx keep the event in its queue.
func (h *PaymentHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.log.Error("Failed to read webhook body", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	signature := r.Header.Get(webhookSignatureHeader)
	if signature == "" {
		utils.ResponseBadRequest(w, "Missing webhook signature", nil)
		return
	}

	err = h.service.HandleWebhookEvent(r.Context(), body, signature)
	switch {
	case err == nil:
		utils.ResponseSuccess(w, "success", nil)

	case errors.Is(err, entity.ErrInvalidSignature):
		h.log.Warn("Webhook rejected - invalid signature")
		utils.ResponseBadRequest(w, "Invalid webhook signature", nil)

	case errors.Is(err, entity.ErrBookingNotFound):
		h.log.Warn("Webhook for unknown booking", zap.Error(err))
		utils.ResponseNotFound(w, "Booking not found")

	case errors.Is(err, entity.ErrSlotAlreadySold):
		// Permanent for this booking; a retry can never succeed. Ack the
		// event and leave the payment to the refund/reconciliation path.
		h.log.Warn("Webhook settlement lost the slot race", zap.Error(err))
		utils.ResponseSuccess(w, "slot already sold, flagged for reconciliation", nil)

	default:
		h.log.Error("Failed to process webhook", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func (h *PaymentHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrBookingNotFound),
		errors.Is(err, entity.ErrVenueNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrInvalidSignature):
		// Generic message out; details (minus secret material) in logs.
		h.log.Warn(operation + " failed - invalid signature")
		utils.ResponseBadRequest(w, "Payment verification failed", nil)

	case errors.Is(err, entity.ErrSlotAlreadySold):
		h.log.Warn(operation+" failed - slot already sold", zap.Error(err))
		utils.ResponseConflict(w, "The slot was sold to another customer; your payment will be refunded")

	case errors.Is(err, entity.ErrGatewayUnavailable):
		h.log.Error(operation+" failed - gateway unavailable", zap.Error(err))
		utils.ResponseServiceUnavailable(w, "Payment gateway unavailable, please retry")

	case errors.Is(err, entity.ErrPollTimeout):
		h.log.Warn(operation+" timed out", zap.Error(err))
		utils.ResponseRequestTimeout(w, "Payment confirmation timed out, booking left pending")

	case errors.Is(err, entity.ErrPaymentNotCaptured):
		h.log.Warn(operation+" failed - payment not captured", zap.Error(err))
		utils.ResponseBadRequest(w, "Payment has not completed", nil)

	case strings.Contains(err.Error(), "unauthorized"):
		h.log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"),
		strings.Contains(err.Error(), "already paid"),
		strings.Contains(err.Error(), "does not match"):
		h.log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
