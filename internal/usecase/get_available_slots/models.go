package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/pkg/types"
)

// Request входные данные для получения доступных слотов
type Request struct {
	CenterID int64
	Date     time.Time
}

// Slot слот рабочей сетки с количеством свободных мест
type Slot struct {
	TimeSlot       types.TimeSlot
	AvailableSpots int
	TotalSpots     int
}

// Response доступные слоты центра на дату
type Response struct {
	CenterID int64
	Date     time.Time
	Slots    []Slot
}
