package referral

import (
	"context"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
)

// ChannelRepository интерфейс репозитория каналов продаж и леджера
type ChannelRepository interface {
	GetChannelByCode(ctx context.Context, code string) (*domain.SalesChannel, error)
	CreateLedgerEntry(ctx context.Context, entry *domain.ReferralLedgerEntry) (*domain.ReferralLedgerEntry, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
