package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	// Каталог никогда не синтезирует отсутствующие записи - это всегда явная ошибка
	ErrServiceNotFound = errors.New("catalogservice client: service not found")

	// ErrCenterNotFound возвращается, когда центр не найден в каталоге
	ErrCenterNotFound = errors.New("catalogservice client: center not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
