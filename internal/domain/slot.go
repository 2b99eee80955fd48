package domain

import (
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/pkg/types"
)

// SlotReservation binds a (center, date, slot) spot to a booking
// Создаётся атомарно вместе с бронированием, освобождается при отмене
type SlotReservation struct {
	ID              int64
	CenterID        int64
	AppointmentDate time.Time
	TimeSlot        types.TimeSlot
	SlotNo          int // Номер места внутри слота, [0, capacity)
	BookingRef      string
	CreatedAt       time.Time
}

// AvailableSlot represents a slot of the fixed universe with its remaining capacity
type AvailableSlot struct {
	TimeSlot       types.TimeSlot
	AvailableSpots int
	TotalSpots     int
}

// IsFull returns true if the slot has no available spots
func (s *AvailableSlot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// SlotUniverse статичная вселенная слотов: часовые интервалы open..close
// Аллокатор только арбитрирует конкуренцию внутри этой вселенной
type SlotUniverse struct {
	OpenTime        types.TimeString
	CloseTime       types.TimeString
	DurationMinutes int
}

// Slots генерирует все слоты вселенной на день
func (u SlotUniverse) Slots() ([]types.TimeSlot, error) {
	slots := make([]types.TimeSlot, 0)
	current := u.OpenTime

	for current.IsBefore(u.CloseTime) {
		end, err := current.AddMinutes(u.DurationMinutes)
		if err != nil {
			return nil, err
		}
		if end.IsAfter(u.CloseTime) {
			break
		}

		slot, err := types.NewTimeSlot(current, u.DurationMinutes)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)

		current = end
	}

	return slots, nil
}

// Contains returns true if the given slot belongs to the universe
func (u SlotUniverse) Contains(slot types.TimeSlot) (bool, error) {
	all, err := u.Slots()
	if err != nil {
		return false, err
	}
	for _, s := range all {
		if s == slot {
			return true, nil
		}
	}
	return false, nil
}
