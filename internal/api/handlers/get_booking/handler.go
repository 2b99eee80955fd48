package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings"
)

const (
	msgMissingBookingRef = "не указан номер бронирования"
	msgNotFound          = "бронирование не найдено"
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

// Handle GET /api/v1/bookings/{bookingRef}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingRef := mux.Vars(r)["bookingRef"]
	if bookingRef == "" {
		handlers.RespondBadRequest(w, msgMissingBookingRef)
		return
	}

	booking, err := h.service.GetByRef(r.Context(), bookingRef)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{ref} - Booking not found: booking_ref=%s", bookingRef)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /bookings/{ref} - Failed to get booking: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}
