package get_center_config

import (
	"context"

	"github.com/m04kA/SMC-DiagnosticsService/internal/service/centerconfig"
)

type CenterConfigService interface {
	Get(ctx context.Context, centerID int64) (*centerconfig.CenterConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
