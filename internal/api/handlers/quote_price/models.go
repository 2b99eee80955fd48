package quote_price

import (
	quotePrice "github.com/m04kA/SMC-DiagnosticsService/internal/usecase/quote_price"
)

// QuotePriceRequest HTTP request model
type QuotePriceRequest struct {
	ServiceID       int64   `json:"serviceId"`
	AppointmentType string  `json:"appointmentType"` // "lab-visit" | "home-service"
	IsUrgent        bool    `json:"isUrgent"`
	CouponCode      *string `json:"couponCode,omitempty"`
}

// QuotePriceResponse HTTP response model
type QuotePriceResponse struct {
	ServiceID   int64  `json:"serviceId"`
	ServiceName string `json:"serviceName"`

	BaseAmount        float64 `json:"baseAmount"`
	HomeServiceCharge float64 `json:"homeServiceCharge"`
	UrgentFee         float64 `json:"urgentFee"`
	Discount          float64 `json:"discount"`
	TaxAmount         float64 `json:"taxAmount"`
	TotalAmount       float64 `json:"totalAmount"`

	CouponApplied bool   `json:"couponApplied"`
	Warning       string `json:"warning,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuotePriceRequest) ToUseCaseRequest() *quotePrice.Request {
	return &quotePrice.Request{
		ServiceID:       r.ServiceID,
		AppointmentType: r.AppointmentType,
		IsUrgent:        r.IsUrgent,
		CouponCode:      r.CouponCode,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuotePriceResponse {
	out := &QuotePriceResponse{
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,

		BaseAmount:        resp.BaseAmount,
		HomeServiceCharge: resp.HomeServiceCharge,
		UrgentFee:         resp.UrgentFee,
		Discount:          resp.Discount,
		TaxAmount:         resp.TaxAmount,
		TotalAmount:       resp.TotalAmount,

		CouponApplied: resp.CouponApplied,
	}

	if resp.InvalidCoupon {
		out.Warning = "купон недействителен, расчет выполнен без скидки"
	}

	return out
}
