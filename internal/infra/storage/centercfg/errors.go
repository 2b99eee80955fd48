package centercfg

import "errors"

var (
	// ErrConfigNotFound возвращается, когда для центра нет конфигурации
	// Вызывающий код в этом случае использует дефолтную вместимость слота
	ErrConfigNotFound = errors.New("centercfg.repository: center config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("centercfg.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("centercfg.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("centercfg.repository: failed to scan row")
)
