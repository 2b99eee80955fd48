package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("domain: invalid status transition")

	// ErrInvalidPaymentTransition возвращается при недопустимом переходе статуса оплаты
	ErrInvalidPaymentTransition = errors.New("domain: invalid payment status transition")
)

// InvalidTransitionError недопустимый переход статуса бронирования
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("domain: invalid status transition: %s -> %s", e.From, e.To)
}

// Unwrap позволяет определять ошибку через errors.Is(err, ErrInvalidTransition)
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NotAdvanceableError статус, из которого нет следующего шага пайплайна
type NotAdvanceableError struct {
	From BookingStatus
}

func (e *NotAdvanceableError) Error() string {
	return fmt.Sprintf("domain: booking in status %s cannot be advanced", e.From)
}

// Unwrap позволяет определять ошибку через errors.Is(err, ErrInvalidTransition)
func (e *NotAdvanceableError) Unwrap() error {
	return ErrInvalidTransition
}

// InvalidPaymentTransitionError недопустимый переход статуса оплаты
type InvalidPaymentTransitionError struct {
	From PaymentStatus
	To   PaymentStatus
}

func (e *InvalidPaymentTransitionError) Error() string {
	return fmt.Sprintf("domain: invalid payment status transition: %s -> %s", e.From, e.To)
}

func (e *InvalidPaymentTransitionError) Unwrap() error {
	return ErrInvalidPaymentTransition
}

// advanceOrder порядок статусов при последовательном продвижении бронирования
// Отмена в этот порядок не входит - она разрешена только из pending/confirmed
var advanceOrder = map[BookingStatus]BookingStatus{
	StatusConfirmed:       StatusSampleCollected,
	StatusSampleCollected: StatusProcessing,
	StatusProcessing:      StatusCompleted,
}

// NextStatus возвращает следующий статус в пайплайне обработки
// (confirmed -> sample-collected -> processing -> completed)
func NextStatus(from BookingStatus) (BookingStatus, error) {
	next, ok := advanceOrder[from]
	if !ok {
		return "", &NotAdvanceableError{From: from}
	}
	return next, nil
}

// ValidateTransition проверяет допустимость перехода статуса бронирования
// Переходы монотонны: из completed и cancelled выхода нет, пропуск шагов запрещён
func ValidateTransition(from, to BookingStatus) error {
	if to == StatusCancelled {
		if from == StatusPending || from == StatusConfirmed {
			return nil
		}
		return &InvalidTransitionError{From: from, To: to}
	}

	if from == StatusPending && to == StatusConfirmed {
		return nil
	}

	if next, ok := advanceOrder[from]; ok && next == to {
		return nil
	}

	return &InvalidTransitionError{From: from, To: to}
}

// ValidatePaymentTransition проверяет допустимость перехода статуса оплаты
// bookingStatus нужен для перехода paid -> refunded: возврат возможен только после отмены
func ValidatePaymentTransition(from, to PaymentStatus, bookingStatus BookingStatus) error {
	switch {
	case from == PaymentPending && (to == PaymentPaid || to == PaymentFailed):
		return nil
	case from == PaymentFailed && to == PaymentPaid:
		// Повторная попытка оплаты после неудачи
		return nil
	case from == PaymentPaid && to == PaymentRefunded:
		if bookingStatus == StatusCancelled {
			return nil
		}
		return &InvalidPaymentTransitionError{From: from, To: to}
	default:
		return &InvalidPaymentTransitionError{From: from, To: to}
	}
}
