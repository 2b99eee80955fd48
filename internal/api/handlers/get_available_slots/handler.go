package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers"
	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DiagnosticsService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCenterID = "некорректный ID центра"
	msgMissingDate     = "не указана дата, ожидается query-параметр date=YYYY-MM-DD"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgCenterNotFound  = "диагностический центр не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/centers/{centerId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	centerID, err := strconv.ParseInt(mux.Vars(r)["centerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /centers/{id}/available-slots - Invalid center ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCenterID)
		return
	}

	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /centers/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		CenterID: centerID,
		Date:     date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCenterNotFound):
			h.logger.Warn("GET /centers/{id}/available-slots - Center not found: center_id=%d", centerID)
			handlers.RespondNotFound(w, msgCenterNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /centers/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCenterID)

		default:
			h.logger.Error("GET /centers/{id}/available-slots - Failed to get slots: center_id=%d, error=%v", centerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
