package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/centercfg"
	"github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/types"
)

// SlotRepository интерфейс репозитория резерваций слотов
type SlotRepository interface {
	CountByCenterAndDate(ctx context.Context, centerID int64, date time.Time) (map[types.TimeSlot]int, error)
}

// CenterConfigRepository интерфейс репозитория конфигурации слотов центров
type CenterConfigRepository interface {
	GetByCenter(ctx context.Context, centerID int64) (*centercfg.CenterSlotConfig, error)
}

// CatalogServiceClient интерфейс клиента для CatalogService
type CatalogServiceClient interface {
	GetCenter(ctx context.Context, centerID int64) (*catalogservice.Center, error)
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
