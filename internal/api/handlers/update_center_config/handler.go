package update_center_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/centerconfig"
)

const (
	msgInvalidCenterID    = "некорректный ID центра"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCapacity    = "некорректная вместимость слота"
)

// UpdateCenterConfigRequest HTTP request model
type UpdateCenterConfigRequest struct {
	SlotCapacity int `json:"slotCapacity"`
}

// CenterConfigResponse HTTP response model
type CenterConfigResponse struct {
	CenterID     int64 `json:"centerId"`
	SlotCapacity int   `json:"slotCapacity"`
}

type Handler struct {
	service CenterConfigService
	logger  Logger
}

func NewHandler(service CenterConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/centers/{centerId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	centerID, err := strconv.ParseInt(mux.Vars(r)["centerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /centers/{id}/config - Invalid center ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCenterID)
		return
	}

	var req UpdateCenterConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /centers/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), centerID, req.SlotCapacity)
	if err != nil {
		switch {
		case errors.Is(err, centerconfig.ErrInvalidInput):
			h.logger.Warn("PUT /centers/{id}/config - Invalid capacity: center_id=%d, capacity=%d", centerID, req.SlotCapacity)
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		default:
			h.logger.Error("PUT /centers/{id}/config - Failed to update config: center_id=%d, error=%v", centerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /centers/{id}/config - Config updated: center_id=%d, capacity=%d", centerID, result.SlotCapacity)
	handlers.RespondJSON(w, http.StatusOK, &CenterConfigResponse{
		CenterID:     result.CenterID,
		SlotCapacity: result.SlotCapacity,
	})
}
