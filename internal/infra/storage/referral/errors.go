package referral

import "errors"

var (
	// ErrChannelNotFound возвращается, когда канал продаж не найден по коду
	ErrChannelNotFound = errors.New("referral.repository: sales channel not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("referral.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("referral.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("referral.repository: failed to scan row")
)
