package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers"
	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings"
)

const (
	msgMissingBookingRef = "не указан номер бронирования"
	msgNotFound          = "бронирование не найдено"
	msgInvalidTransition = "бронирование нельзя подтвердить из текущего статуса"
	msgPaymentFailed     = "бронирование с неуспешной оплатой нельзя подтвердить"
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

// Handle PATCH /api/v1/bookings/{bookingRef}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingRef := mux.Vars(r)["bookingRef"]
	if bookingRef == "" {
		handlers.RespondBadRequest(w, msgMissingBookingRef)
		return
	}

	result, err := h.service.Confirm(r.Context(), bookingRef)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{ref}/confirm - Booking not found: booking_ref=%s", bookingRef)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrPaymentFailed):
			h.logger.Warn("PATCH /bookings/{ref}/confirm - Payment failed: booking_ref=%s", bookingRef)
			handlers.RespondConflict(w, msgPaymentFailed)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{ref}/confirm - Invalid transition: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{ref}/confirm - Failed to confirm: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{ref}/confirm - Booking confirmed: booking_ref=%s", bookingRef)
	handlers.RespondJSON(w, http.StatusOK, result)
}
