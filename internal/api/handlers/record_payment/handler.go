package record_payment

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
	msgInvalidInput       = "некорректный статус или способ оплаты"
	msgNotFound           = "бронирование не найдено"
	msgInvalidTransition  = "недопустимый переход статуса оплаты"
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

// Handle PATCH /api/v1/bookings/{bookingRef}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingRef := mux.Vars(r)["bookingRef"]
	if bookingRef == "" {
		handlers.RespondBadRequest(w, msgMissingBookingRef)
		return
	}

	var req models.RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{ref}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), bookingRef, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{ref}/payment - Booking not found: booking_ref=%s", bookingRef)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{ref}/payment - Invalid input: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, domain.ErrInvalidPaymentTransition):
			h.logger.Warn("PATCH /bookings/{ref}/payment - Invalid payment transition: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /bookings/{ref}/payment - Failed to record payment: booking_ref=%s, error=%v", bookingRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{ref}/payment - Payment recorded: booking_ref=%s, payment_status=%s",
		bookingRef, result.PaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, result)
}
