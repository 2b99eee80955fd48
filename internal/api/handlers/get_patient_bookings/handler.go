package get_patient_bookings

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings/models"
)

const (
	msgInvalidEmail  = "некорректный email пациента"
	msgInvalidStatus = "некорректный статус"
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

// Handle GET /api/v1/patients/{email}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]
	if _, err := mail.ParseAddress(email); err != nil {
		h.logger.Warn("GET /patients/{email}/bookings - Invalid email: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmail)
		return
	}

	req := &models.GetPatientBookingsRequest{PatientEmail: email}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetPatientBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /patients/{email}/bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /patients/{email}/bookings - Failed to get bookings: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /patients/{email}/bookings - Returned %d bookings: email=%s", len(result.Bookings), email)
	handlers.RespondJSON(w, http.StatusOK, result)
}
