package domain

// Default pricing values
const (
	DefaultHomeServiceCharge = 200.0 // Фиксированная надбавка за выезд на дом
	DefaultUrgentFee         = 500.0 // Надбавка за срочность, если услуга не задала свою
	DefaultTaxRate           = 0.18  // Ставка налога
)

// Default slot universe values
// Аллокатор не генерирует расписание сам - вселенная слотов статична и задаётся конфигом
const (
	DefaultSlotOpenTime        = "09:00"
	DefaultSlotCloseTime       = "18:00"
	DefaultSlotDurationMinutes = 60
	DefaultSlotCapacity        = 1
)

// Business validation constants
const (
	MinPatientAge          = 0
	MaxPatientAge          = 130
	PhoneDigits            = 10
	MaxCancellationReason  = 500
	BookingRefPrefix       = "DGB"
	DefaultPendingTTLMin   = 120 // TTL неоплаченного pending-бронирования, минуты
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// RestrictedCategories категории услуг, недоступные для выезда на дом
// Оборудование (МРТ, КТ) физически не перевозится - правило проверяется
// только валидатором и никогда не переопределяется молча
var RestrictedCategories = map[string]bool{
	"mri": true,
	"ct":  true,
}

// IsRestrictedCategory returns true if the service category cannot be fulfilled at home
func IsRestrictedCategory(category string) bool {
	return RestrictedCategories[category]
}

// ActiveStatuses статусы бронирований, удерживающих свой слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusSampleCollected,
	StatusProcessing,
	StatusCompleted,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusSampleCollected,
	StatusProcessing,
	StatusCompleted,
	StatusCancelled,
}

// ValidPaymentMethods все допустимые способы оплаты
var ValidPaymentMethods = []PaymentMethod{
	PaymentMethodOnline,
	PaymentMethodCash,
	PaymentMethodInsurance,
	PaymentMethodWallet,
}
