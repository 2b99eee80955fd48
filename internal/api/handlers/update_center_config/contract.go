package update_center_config

import (
	"context"

	"github.com/m04kA/SMC-DiagnosticsService/internal/service/centerconfig"
)

type CenterConfigService interface {
	Update(ctx context.Context, centerID int64, slotCapacity int) (*centerconfig.CenterConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
