package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-DiagnosticsService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrSlot     = "некорректный формат даты или слота, ожидается YYYY-MM-DD и HH:MM-HH:MM"
	msgInvalidInput          = "некорректные данные бронирования"
	msgServiceNotFound       = "услуга не найдена"
	msgCenterNotFound        = "диагностический центр не найден"
	msgServiceNotOffered     = "центр не оказывает выбранную услугу"
	msgRestrictedHomeService = "услуга этой категории недоступна для выезда на дом"
	msgHomeServiceNA         = "услуга недоступна для выезда на дом"
	msgInvalidDate           = "некорректная дата бронирования"
	msgInvalidTimeSlot       = "слот вне рабочей сетки центра"
	msgSlotNotAvailable      = "выбранный временной слот занят"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и слота)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: center_id=%d, slot=%s", req.CenterID, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrCenterNotFound):
			h.logger.Warn("POST /bookings - Center not found: center_id=%d", req.CenterID)
			handlers.RespondNotFound(w, msgCenterNotFound)

		case errors.Is(err, createBooking.ErrServiceNotOffered):
			h.logger.Warn("POST /bookings - Service not offered: service_id=%d, center_id=%d", req.ServiceID, req.CenterID)
			handlers.RespondBadRequest(w, msgServiceNotOffered)

		case errors.Is(err, createBooking.ErrRestrictedHomeService):
			h.logger.Warn("POST /bookings - Restricted category for home service: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgRestrictedHomeService)

		case errors.Is(err, createBooking.ErrHomeServiceNotAvailable):
			h.logger.Warn("POST /bookings - Home service not available: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgHomeServiceNA)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: date=%s", req.AppointmentDate)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: slot=%s", req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: service_id=%d, center_id=%d, error=%v",
				req.ServiceID, req.CenterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_ref=%s, total=%.2f", result.BookingRef, result.TotalAmount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
