package referral

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках атрибуции
	ErrInternal = errors.New("referral: internal error")
)
