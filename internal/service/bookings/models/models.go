package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentStatus возвращается при некорректном статусе оплаты
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrInvalidPaymentMethod возвращается при некорректном способе оплаты
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// RecordPaymentRequest запрос на фиксацию результата оплаты
type RecordPaymentRequest struct {
	PaymentStatus string  `json:"paymentStatus"` // "paid" | "failed" | "refunded"
	PaymentMethod *string `json:"paymentMethod,omitempty"`
}

// GetPatientBookingsRequest запрос истории бронирований пациента
type GetPatientBookingsRequest struct {
	PatientEmail string  `json:"patientEmail"`
	Status       *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	BookingRef      string `json:"bookingRef"`
	PatientName     string `json:"patientName"`
	PatientAge      int    `json:"patientAge"`
	PatientGender   string `json:"patientGender"`
	PatientEmail    string `json:"patientEmail"`
	PatientPhone    string `json:"patientPhone"`
	ServiceID       int64  `json:"serviceId"`
	ServiceName     string `json:"serviceName"`
	ServiceCategory string `json:"serviceCategory"`
	CenterID        int64  `json:"centerId"`
	CenterName      string `json:"centerName"`
	CenterAddress   string `json:"centerAddress"`
	AppointmentType string `json:"appointmentType"`

	HomeAddress *string `json:"homeAddress,omitempty"`
	PostalCode  *string `json:"postalCode,omitempty"`

	AppointmentDate string `json:"appointmentDate"` // "2026-09-15"
	TimeSlot        string `json:"timeSlot"`        // "09:00-10:00"
	IsUrgent        bool   `json:"isUrgent"`

	BaseAmount        float64 `json:"baseAmount"`
	HomeServiceCharge float64 `json:"homeServiceCharge"`
	UrgentFee         float64 `json:"urgentFee"`
	Discount          float64 `json:"discount"`
	TaxAmount         float64 `json:"taxAmount"`
	TotalAmount       float64 `json:"totalAmount"`

	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	PaymentMethod string `json:"paymentMethod"`

	ReferralCode *string `json:"referralCode,omitempty"`
	CouponCode   *string `json:"couponCode,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatusResponse ответ операции перехода статуса
type StatusResponse struct {
	BookingRef    string `json:"bookingRef"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		BookingRef:         b.BookingRef,
		PatientName:        b.PatientName,
		PatientAge:         b.PatientAge,
		PatientGender:      b.PatientGender,
		PatientEmail:       b.PatientEmail,
		PatientPhone:       b.PatientPhone,
		ServiceID:          b.ServiceID,
		ServiceName:        b.ServiceName,
		ServiceCategory:    b.ServiceCategory,
		CenterID:           b.CenterID,
		CenterName:         b.CenterName,
		CenterAddress:      b.CenterAddress,
		AppointmentType:    string(b.AppointmentType),
		HomeAddress:        b.HomeAddress,
		PostalCode:         b.PostalCode,
		AppointmentDate:    b.AppointmentDate.Format(domain.DateFormat),
		TimeSlot:           b.TimeSlot.String(),
		IsUrgent:           b.IsUrgent,
		BaseAmount:         b.BaseAmount,
		HomeServiceCharge:  b.HomeServiceCharge,
		UrgentFee:          b.UrgentFee,
		Discount:           b.Discount,
		TaxAmount:          b.TaxAmount,
		TotalAmount:        b.TotalAmount,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PaymentMethod:      string(b.PaymentMethod),
		ReferralCode:       b.ReferralCode,
		CouponCode:         b.CouponCode,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	for _, valid := range domain.ValidStatuses {
		if s == valid {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)
	switch s {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentFailed, domain.PaymentRefunded:
		return s, nil
	default:
		return "", ErrInvalidPaymentStatus
	}
}

// ToDomainPaymentMethod конвертирует строку в domain.PaymentMethod с валидацией
func ToDomainPaymentMethod(method string) (domain.PaymentMethod, error) {
	m := domain.PaymentMethod(method)
	for _, valid := range domain.ValidPaymentMethods {
		if m == valid {
			return m, nil
		}
	}
	return "", ErrInvalidPaymentMethod
}
