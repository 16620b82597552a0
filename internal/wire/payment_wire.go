package wire

import (
	"venue-booking/internal/adaptor"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require identity) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(log))

		// POST /api/payments/order - Create (or reuse) processor order
		r.Post("/api/payments/order", paymentHandler.CreateOrder)

		// POST /api/payments/verify - Redirect-flow confirmation
		r.Post("/api/payments/verify", paymentHandler.VerifyPayment)

		// GET /api/payments/status - Single polling attempt
		r.Get("/api/payments/status", paymentHandler.PollStatus)

		// GET /api/payments/wait - Bounded polling loop (QR flow)
		r.Get("/api/payments/wait", paymentHandler.WaitForPayment)
	})

	// ==================== PUBLIC ROUTES ====================
	// POST /api/payments/webhook - Processor push, authenticated by the
	// raw-body signature rather than a user session.
	r.Post("/api/payments/webhook", paymentHandler.HandleWebhook)
}
