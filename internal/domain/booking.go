package domain

import (
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending         BookingStatus = "pending"
	StatusConfirmed       BookingStatus = "confirmed"
	StatusSampleCollected BookingStatus = "sample-collected"
	StatusProcessing      BookingStatus = "processing"
	StatusCompleted       BookingStatus = "completed"
	StatusCancelled       BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// PaymentMethod represents how the patient pays for a booking
type PaymentMethod string

const (
	PaymentMethodOnline    PaymentMethod = "online"
	PaymentMethodCash      PaymentMethod = "cash"
	PaymentMethodInsurance PaymentMethod = "insurance"
	PaymentMethodWallet    PaymentMethod = "wallet"
)

// AppointmentType represents where the test is performed
type AppointmentType string

const (
	AppointmentLabVisit    AppointmentType = "lab-visit"
	AppointmentHomeService AppointmentType = "home-service"
)

// Booking represents a diagnostic test booking in the system
type Booking struct {
	ID         int64
	BookingRef string // Человекочитаемый номер бронирования (DGB-YYYYMMDD-xxxxxxxx)

	// Пациент
	PatientName   string
	PatientAge    int
	PatientGender string
	PatientEmail  string
	PatientPhone  string

	// Выбор услуги и центра
	ServiceID       int64
	ServiceName     string
	ServiceCategory string
	CenterID        int64
	CenterName      string
	CenterAddress   string
	AppointmentType AppointmentType

	// Адрес для выезда на дом (только для home-service)
	HomeAddress *string
	PostalCode  *string

	// Расписание
	AppointmentDate time.Time
	TimeSlot        types.TimeSlot
	IsUrgent        bool

	// Финансы (все суммы уже округлены до 2 знаков)
	BaseAmount        float64
	HomeServiceCharge float64
	UrgentFee         float64
	Discount          float64
	TaxAmount         float64
	TotalAmount       float64

	Status        BookingStatus
	PaymentStatus PaymentStatus
	PaymentMethod PaymentMethod

	// Атрибуция
	ReferralCode *string
	CouponCode   *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
// (после забора биоматериала отмена невозможна)
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// IsHomeService returns true for home collection bookings
func (b *Booking) IsHomeService() bool {
	return b.AppointmentType == AppointmentHomeService
}

// PaymentRequired returns true if there is anything left to pay
func (b *Booking) PaymentRequired() bool {
	return b.TotalAmount > 0 && b.PaymentStatus == PaymentPending
}
