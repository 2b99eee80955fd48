package quote_price

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	couponRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/pricing"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/ptr"
)

type fakeCatalogClient struct {
	services map[int64]*catalogservice.Service
}

func (f *fakeCatalogClient) GetService(_ context.Context, serviceID int64) (*catalogservice.Service, error) {
	service, ok := f.services[serviceID]
	if !ok {
		return nil, catalogservice.ErrServiceNotFound
	}
	return service, nil
}

type fakeCouponResolver struct {
	coupons map[string]*domain.Coupon
}

func (f *fakeCouponResolver) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	coupon, ok := f.coupons[code]
	if !ok {
		return nil, couponRepo.ErrCouponNotFound
	}
	return coupon, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase() *UseCase {
	catalog := &fakeCatalogClient{services: map[int64]*catalogservice.Service{
		1: {
			ID:                  1,
			Name:                "Полный анализ крови",
			Category:            "blood-test",
			BasePrice:           999,
			DiscountedPrice:     ptr.Ptr(899.0),
			HomeServiceEligible: true,
		},
	}}
	coupons := &fakeCouponResolver{coupons: map[string]*domain.Coupon{
		"SAVE100": {Code: "SAVE100", Discount: 100, Active: true},
	}}
	pricingService := pricing.NewService(200, 0.18, 500, coupons, nopLogger{})
	return NewUseCase(catalog, pricingService, nopLogger{})
}

func TestExecute_LabVisitQuote(t *testing.T) {
	uc := newTestUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID:       1,
		AppointmentType: string(domain.AppointmentLabVisit),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ServiceID)
	assert.Equal(t, "Полный анализ крови", resp.ServiceName)
	assert.Equal(t, 899.0, resp.BaseAmount)
	assert.Equal(t, 0.0, resp.HomeServiceCharge)
	assert.Equal(t, 0.0, resp.UrgentFee)
	assert.Equal(t, 161.82, resp.TaxAmount)
	assert.Equal(t, 1060.82, resp.TotalAmount)
	assert.False(t, resp.CouponApplied)
	assert.False(t, resp.InvalidCoupon)
}

func TestExecute_UrgentHomeServiceQuote(t *testing.T) {
	uc := newTestUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID:       1,
		AppointmentType: string(domain.AppointmentHomeService),
		IsUrgent:        true,
	})
	require.NoError(t, err)

	// 899 + 200 (выезд) + 500 (срочность) = 1599, налог 18%
	assert.Equal(t, 200.0, resp.HomeServiceCharge)
	assert.Equal(t, 500.0, resp.UrgentFee)
	assert.Equal(t, 287.82, resp.TaxAmount)
	assert.Equal(t, 1886.82, resp.TotalAmount)
}

func TestExecute_CouponApplied(t *testing.T) {
	uc := newTestUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID:       1,
		AppointmentType: string(domain.AppointmentLabVisit),
		CouponCode:      ptr.Ptr("SAVE100"),
	})
	require.NoError(t, err)

	assert.True(t, resp.CouponApplied)
	assert.False(t, resp.InvalidCoupon)
	assert.Equal(t, 100.0, resp.Discount)
	assert.Equal(t, 143.82, resp.TaxAmount)
	assert.Equal(t, 942.82, resp.TotalAmount)
}

func TestExecute_InvalidCouponIsWarning(t *testing.T) {
	uc := newTestUseCase()

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID:       1,
		AppointmentType: string(domain.AppointmentLabVisit),
		CouponCode:      ptr.Ptr("EXPIRED"),
	})
	require.NoError(t, err)

	assert.True(t, resp.InvalidCoupon)
	assert.False(t, resp.CouponApplied)
	assert.Equal(t, 0.0, resp.Discount)
	assert.Equal(t, 1060.82, resp.TotalAmount)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID:       42,
		AppointmentType: string(domain.AppointmentLabVisit),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase()

	tests := []struct {
		name string
		req  *Request
	}{
		{"nonpositive service id", &Request{ServiceID: 0, AppointmentType: string(domain.AppointmentLabVisit)}},
		{"unknown appointment type", &Request{ServiceID: 1, AppointmentType: "walk-in"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
