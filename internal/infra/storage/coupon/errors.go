package coupon

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купон не найден или неактивен
	ErrCouponNotFound = errors.New("coupon.repository: coupon not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("coupon.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("coupon.repository: failed to scan row")
)
