package get_available_slots

import "errors"

var (
	// ErrCenterNotFound возвращается, когда диагностический центр не найден
	ErrCenterNotFound = errors.New("get_available_slots: center not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
