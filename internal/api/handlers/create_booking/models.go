package create_booking

import (
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	createBooking "github.com/m04kA/SMC-DiagnosticsService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PatientName   string `json:"patientName"`
	PatientAge    int    `json:"patientAge"`
	PatientGender string `json:"patientGender"`
	PatientEmail  string `json:"patientEmail"`
	PatientPhone  string `json:"patientPhone"`

	ServiceID       int64   `json:"serviceId"`
	CenterID        int64   `json:"centerId"`
	AppointmentType string  `json:"appointmentType"` // "lab-visit" | "home-service"
	HomeAddress     *string `json:"homeAddress,omitempty"`
	PostalCode      *string `json:"postalCode,omitempty"`

	AppointmentDate string `json:"appointmentDate"` // "2026-03-12"
	TimeSlot        string `json:"timeSlot"`        // "10:00-11:00"
	IsUrgent        bool   `json:"isUrgent"`

	PaymentMethod *string `json:"paymentMethod,omitempty"`
	ReferralCode  *string `json:"referralCode,omitempty"`
	CouponCode    *string `json:"couponCode,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	BookingRef      string `json:"bookingRef"`
	Status          string `json:"status"`
	PaymentStatus   string `json:"paymentStatus"`
	AppointmentDate string `json:"appointmentDate"`
	TimeSlot        string `json:"timeSlot"`

	BaseAmount        float64 `json:"baseAmount"`
	HomeServiceCharge float64 `json:"homeServiceCharge"`
	UrgentFee         float64 `json:"urgentFee"`
	Discount          float64 `json:"discount"`
	TaxAmount         float64 `json:"taxAmount"`
	TotalAmount       float64 `json:"totalAmount"`

	PaymentRequired bool   `json:"paymentRequired"`
	Warning         string `json:"warning,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	appointmentDate, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	timeSlot, err := types.NewTimeSlotFromString(r.TimeSlot)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		PatientName:     r.PatientName,
		PatientAge:      r.PatientAge,
		PatientGender:   r.PatientGender,
		PatientEmail:    r.PatientEmail,
		PatientPhone:    r.PatientPhone,
		ServiceID:       r.ServiceID,
		CenterID:        r.CenterID,
		AppointmentType: r.AppointmentType,
		HomeAddress:     r.HomeAddress,
		PostalCode:      r.PostalCode,
		AppointmentDate: appointmentDate,
		TimeSlot:        timeSlot,
		IsUrgent:        r.IsUrgent,
		PaymentMethod:   r.PaymentMethod,
		ReferralCode:    r.ReferralCode,
		CouponCode:      r.CouponCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	out := &CreateBookingResponse{
		BookingRef:      resp.BookingRef,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		AppointmentDate: resp.AppointmentDate.Format(domain.DateFormat),
		TimeSlot:        string(resp.TimeSlot),

		BaseAmount:        resp.BaseAmount,
		HomeServiceCharge: resp.HomeServiceCharge,
		UrgentFee:         resp.UrgentFee,
		Discount:          resp.Discount,
		TaxAmount:         resp.TaxAmount,
		TotalAmount:       resp.TotalAmount,

		PaymentRequired: resp.PaymentRequired,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}

	if resp.InvalidCoupon {
		out.Warning = "купон недействителен, бронирование создано без скидки"
	}

	return out
}
