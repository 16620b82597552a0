package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"venue-booking/internal/data/entity"
	"venue-booking/internal/dto/request"
	"venue-booking/internal/usecase"
	"venue-booking/pkg/utils"

	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/booking (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.Reserve(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetUserBookings handles GET /api/user/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	bookings, err := h.service.GetUserBookings(r.Context(), userID.String(), req)
	if err != nil {
		h.handleServiceError(w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrSlotConflict):
		// Recoverable: the client re-fetches availability and retries
		// with a different selection.
		h.log.Warn(operation+" failed - slot conflict", zap.Error(err))
		utils.ResponseConflict(w, "Selected slots are no longer available, please pick again")

	case errors.Is(err, entity.ErrVenueNotFound):
		h.log.Warn(operation+" failed - venue not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, entity.ErrPastDate),
		errors.Is(err, entity.ErrInvalidSlotSelection):
		h.log.Warn(operation+" failed - invalid selection", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"),
		strings.Contains(err.Error(), "invalid"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
