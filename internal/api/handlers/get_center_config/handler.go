package get_center_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DiagnosticsService/internal/api/handlers"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/centerconfig"
)

const msgInvalidCenterID = "некорректный ID центра"

// CenterConfigResponse HTTP response model
type CenterConfigResponse struct {
	CenterID     int64 `json:"centerId"`
	SlotCapacity int   `json:"slotCapacity"`
	IsDefault    bool  `json:"isDefault"`
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

// Handle GET /api/v1/centers/{centerId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	centerID, err := strconv.ParseInt(mux.Vars(r)["centerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /centers/{id}/config - Invalid center ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCenterID)
		return
	}

	result, err := h.service.Get(r.Context(), centerID)
	if err != nil {
		switch {
		case errors.Is(err, centerconfig.ErrInvalidInput):
			h.logger.Warn("GET /centers/{id}/config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCenterID)

		default:
			h.logger.Error("GET /centers/{id}/config - Failed to get config: center_id=%d, error=%v", centerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &CenterConfigResponse{
		CenterID:     result.CenterID,
		SlotCapacity: result.SlotCapacity,
		IsDefault:    result.IsDefault,
	})
}
