package get_available_slots

import (
	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-DiagnosticsService/internal/usecase/get_available_slots"
)

// SlotResponse слот рабочей сетки с количеством свободных мест
type SlotResponse struct {
	TimeSlot       string `json:"timeSlot"` // "09:00-10:00"
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CenterID int64          `json:"centerId"`
	Date     string         `json:"date"` // "2026-03-12"
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			TimeSlot:       string(slot.TimeSlot),
			AvailableSpots: slot.AvailableSpots,
			TotalSpots:     slot.TotalSpots,
		})
	}

	return &AvailableSlotsResponse{
		CenterID: resp.CenterID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    slots,
	}
}
