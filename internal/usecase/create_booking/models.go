package create_booking

import (
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/pkg/types"
)

// Request входные данные для создания бронирования
type Request struct {
	PatientName   string
	PatientAge    int
	PatientGender string
	PatientEmail  string
	PatientPhone  string

	ServiceID       int64
	CenterID        int64
	AppointmentType string

	HomeAddress *string
	PostalCode  *string

	AppointmentDate time.Time
	TimeSlot        types.TimeSlot
	IsUrgent        bool

	PaymentMethod *string
	ReferralCode  *string
	CouponCode    *string
}

// Response результат создания бронирования
type Response struct {
	BookingRef      string
	Status          string
	PaymentStatus   string
	AppointmentDate time.Time
	TimeSlot        types.TimeSlot

	BaseAmount        float64
	HomeServiceCharge float64
	UrgentFee         float64
	Discount          float64
	TaxAmount         float64
	TotalAmount       float64

	PaymentRequired bool
	// InvalidCoupon - предупреждение: бронирование создано без скидки
	InvalidCoupon bool

	CreatedAt time.Time
}
