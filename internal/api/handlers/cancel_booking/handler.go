package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers"
	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings/models"
)

const (
	msgMissingBookingRef  = "не указан номер бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgCannotCancel       = "бронирование нельзя отменить из текущего статуса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingRef}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingRef := mux.Vars(r)["bookingRef"]
	if bookingRef == "" {
		handlers.RespondBadRequest(w, msgMissingBookingRef)
		return
	}

	var req models.CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{ref}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Cancel(r.Context(), bookingRef, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{ref}/cancel - Booking not found: booking_ref=%s", bookingRef)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{ref}/cancel - Cannot cancel: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("PATCH /bookings/{ref}/cancel - Failed to cancel: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{ref}/cancel - Booking cancelled: booking_ref=%s", bookingRef)
	handlers.RespondJSON(w, http.StatusOK, result)
}
