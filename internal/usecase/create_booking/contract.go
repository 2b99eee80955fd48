package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	"github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/centercfg"
	"github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-DiagnosticsService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/pricing"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotRepository интерфейс репозитория резерваций слотов
type SlotRepository interface {
	Reserve(ctx context.Context, centerID int64, date time.Time, timeSlot types.TimeSlot, capacity int, bookingRef string) (*domain.SlotReservation, error)
}

// CenterConfigRepository интерфейс репозитория конфигурации слотов центров
type CenterConfigRepository interface {
	GetByCenter(ctx context.Context, centerID int64) (*centercfg.CenterSlotConfig, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*catalogservice.Service, error)
	GetCenter(ctx context.Context, centerID int64) (*catalogservice.Center, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	SendConfirmation(ctx context.Context, msg *notifyservice.ConfirmationMessage) error
}

// PricingService интерфейс калькулятора стоимости
type PricingService interface {
	Quote(ctx context.Context, service *catalogservice.Service, appointmentType domain.AppointmentType, isUrgent bool, couponCode *string) (*pricing.Quote, error)
}

// ReferralService интерфейс сервиса атрибуции каналам продаж
type ReferralService interface {
	Attribute(ctx context.Context, referralCode *string, bookingRef string, totalAmount float64) (*domain.ReferralLedgerEntry, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
