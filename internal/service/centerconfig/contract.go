package centerconfig

import (
	"context"

	"github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/centercfg"
)

// ConfigRepository интерфейс репозитория конфигурации слотов центров
type ConfigRepository interface {
	GetByCenter(ctx context.Context, centerID int64) (*centercfg.CenterSlotConfig, error)
	Upsert(ctx context.Context, centerID int64, slotCapacity int) (*centercfg.CenterSlotConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
