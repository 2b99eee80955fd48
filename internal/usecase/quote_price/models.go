package quote_price

// Request входные данные для котировки
type Request struct {
	ServiceID       int64
	AppointmentType string
	IsUrgent        bool
	CouponCode      *string
}

// Response детализированная котировка
// Бронирование с теми же входными данными даст ровно эти же суммы
type Response struct {
	ServiceID   int64
	ServiceName string

	BaseAmount        float64
	HomeServiceCharge float64
	UrgentFee         float64
	Discount          float64
	TaxAmount         float64
	TotalAmount       float64

	CouponApplied bool
	InvalidCoupon bool
}
