// internal/wire/wire.go
package wire

import (
	"net/http"

	"venue-booking/internal/adaptor"
	"venue-booking/internal/data/repository"
	"venue-booking/internal/gateway"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/middleware"
	"venue-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	processor := gateway.NewRazorpayProcessor(
		config.Payment.KeyID,
		config.Payment.KeySecret,
		config.Payment.WebhookSecret,
		config.Payment.Currency,
		logger,
	)

	service := usecase.NewService(repo, processor, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireVenue(r, handler.Venue, config, logger)
	wireBooking(r, handler.Booking, config, logger)
	wirePayment(r, handler.Payment, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
