package advance_booking

import (
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers"
	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings"
)

const (
	msgMissingBookingRef  = "не указан номер бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный целевой статус"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "недопустимый переход статуса"
)

// AdvanceBookingRequest HTTP request model
// Status опционален: без него бронирование продвигается на следующий шаг
type AdvanceBookingRequest struct {
	Status *string `json:"status,omitempty"`
}

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

// Handle PATCH /api/v1/bookings/{bookingRef}/advance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingRef := mux.Vars(r)["bookingRef"]
	if bookingRef == "" {
		handlers.RespondBadRequest(w, msgMissingBookingRef)
		return
	}

	// Тело опционально
	var req AdvanceBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /bookings/{ref}/advance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Advance(r.Context(), bookingRef, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{ref}/advance - Booking not found: booking_ref=%s", bookingRef)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{ref}/advance - Invalid target status: booking_ref=%s", bookingRef)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, domain.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{ref}/advance - Invalid transition: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{ref}/advance - Failed to advance: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{ref}/advance - Booking advanced: booking_ref=%s, status=%s", bookingRef, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
