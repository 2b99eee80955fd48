package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidTimeSlot возвращается при некорректном формате слота
	ErrInvalidTimeSlot = errors.New("types: invalid time slot format, expected HH:MM-HH:MM")
)

// TimeSlot временной слот в формате "HH:MM-HH:MM" (например, "09:00-10:00")
// Фиксированный токен интервала, по которому отслеживается вместимость центра
type TimeSlot string

// NewTimeSlot создает TimeSlot из времени начала и длительности в минутах
func NewTimeSlot(start TimeString, durationMinutes int) (TimeSlot, error) {
	if err := start.Validate(); err != nil {
		return "", err
	}

	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return "", err
	}

	return TimeSlot(fmt.Sprintf("%s-%s", start, end)), nil
}

// NewTimeSlotFromString создает TimeSlot из строки с валидацией
func NewTimeSlotFromString(s string) (TimeSlot, error) {
	ts := TimeSlot(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет формат слота и что начало строго раньше конца
func (s TimeSlot) Validate() error {
	start, end, err := s.bounds()
	if err != nil {
		return err
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: %q start must be before end", ErrInvalidTimeSlot, string(s))
	}
	return nil
}

// IsZero возвращает true, если значение не задано
func (s TimeSlot) IsZero() bool {
	return s == ""
}

// String возвращает строковое представление
func (s TimeSlot) String() string {
	return string(s)
}

// Start возвращает время начала слота
func (s TimeSlot) Start() (TimeString, error) {
	start, _, err := s.bounds()
	return start, err
}

// End возвращает время конца слота
func (s TimeSlot) End() (TimeString, error) {
	_, end, err := s.bounds()
	return end, err
}

func (s TimeSlot) bounds() (TimeString, TimeString, error) {
	parts := strings.Split(string(s), "-")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTimeSlot, string(s))
	}

	start, err := NewTimeStringFromString(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTimeSlot, string(s))
	}

	end, err := NewTimeStringFromString(parts[1])
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidTimeSlot, string(s))
	}

	return start, end, nil
}

// Value реализует driver.Valuer для записи в БД
func (s TimeSlot) Value() (driver.Value, error) {
	return string(s), nil
}

// Scan реализует sql.Scanner для чтения из БД
func (s *TimeSlot) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*s = TimeSlot(v)
	case []byte:
		*s = TimeSlot(v)
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeSlot, src)
	}
	return nil
}
