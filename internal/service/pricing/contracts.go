package pricing

import (
	"context"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
)

// CouponResolver интерфейс резолвера купонов
// Абстракция вместо фиксированной таблицы кодов: купоны живут в БД
type CouponResolver interface {
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
