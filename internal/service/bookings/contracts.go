package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByRef(ctx context.Context, bookingRef string) (*domain.Booking, error)
	GetByPatientEmail(ctx context.Context, email string, status *domain.BookingStatus) ([]*domain.Booking, error)
	ListStalePending(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error
	UpdatePaymentStatusFrom(ctx context.Context, id int64, from, to domain.PaymentStatus, method *domain.PaymentMethod) error
	Cancel(ctx context.Context, id int64, reason string, from []domain.BookingStatus) error
}

// SlotRepository интерфейс репозитория резерваций слотов
type SlotRepository interface {
	ReleaseByBookingRef(ctx context.Context, bookingRef string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
