package slot

import "errors"

var (
	// ErrSlotTaken возвращается, когда все места слота заняты
	// Проигравший гонку запрос получает эту ошибку и не создаёт бронирование
	ErrSlotTaken = errors.New("slot.repository: slot is fully booked")

	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = errors.New("slot.repository: reservation not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
