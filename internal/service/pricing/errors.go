package pricing

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках калькулятора
	ErrInternal = errors.New("pricing: internal error")
)
