package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrCenterNotFound возвращается, когда диагностический центр не найден
	ErrCenterNotFound = errors.New("create_booking: center not found")

	// ErrServiceNotOffered возвращается, когда центр не оказывает выбранную услугу
	ErrServiceNotOffered = errors.New("create_booking: service is not offered by this center")

	// ErrRestrictedHomeService возвращается при попытке заказать на дом услугу
	// запрещенной категории (МРТ, КТ)
	ErrRestrictedHomeService = errors.New("create_booking: service category is not available for home service")

	// ErrHomeServiceNotAvailable возвращается, когда услуга не предполагает выезд на дом
	ErrHomeServiceNotAvailable = errors.New("create_booking: service is not available for home service")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда слот не принадлежит рабочей сетке центра
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда все места в слоте заняты
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
