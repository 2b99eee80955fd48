package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	couponRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/ptr"
)

type fakeCouponResolver struct {
	coupons map[string]float64
}

func (f *fakeCouponResolver) GetByCode(_ context.Context, code string) (*domain.Coupon, error) {
	discount, ok := f.coupons[code]
	if !ok {
		return nil, couponRepo.ErrCouponNotFound
	}
	return &domain.Coupon{Code: code, Discount: discount, Active: true}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() *Service {
	resolver := &fakeCouponResolver{coupons: map[string]float64{"QUICK50": 50}}
	return NewService(200, 0.18, 500, resolver, nopLogger{})
}

func TestQuote_BloodTestWithCoupon(t *testing.T) {
	// base 899, coupon QUICK50 -> taxable 849, tax 152.82, total 1001.82
	svc := newTestService()
	service := &catalogservice.Service{ID: 1, Name: "Blood Test", Category: "blood-test", BasePrice: 899}

	quote, err := svc.Quote(context.Background(), service, domain.AppointmentLabVisit, false, ptr.Ptr("QUICK50"))
	require.NoError(t, err)

	assert.Equal(t, 899.0, quote.Amounts.BaseAmount)
	assert.Equal(t, 0.0, quote.Amounts.HomeServiceCharge)
	assert.Equal(t, 0.0, quote.Amounts.UrgentFee)
	assert.Equal(t, 50.0, quote.Amounts.Discount)
	assert.Equal(t, 152.82, quote.Amounts.TaxAmount)
	assert.Equal(t, 1001.82, quote.Amounts.TotalAmount)
	assert.True(t, quote.CouponApplied)
	assert.False(t, quote.InvalidCoupon)
	assert.True(t, quote.Amounts.CheckTotalIdentity())
}

func TestQuote_HomeServiceCharge(t *testing.T) {
	svc := newTestService()
	service := &catalogservice.Service{ID: 2, Name: "Thyroid Panel", Category: "blood-test", BasePrice: 600, HomeServiceEligible: true}

	quote, err := svc.Quote(context.Background(), service, domain.AppointmentHomeService, false, nil)
	require.NoError(t, err)

	assert.Equal(t, 200.0, quote.Amounts.HomeServiceCharge)
	assert.Equal(t, domain.Round2(800*0.18), quote.Amounts.TaxAmount)
	assert.Equal(t, domain.Round2(800*1.18), quote.Amounts.TotalAmount)
}

func TestQuote_UrgentFee(t *testing.T) {
	svc := newTestService()

	t.Run("per-service urgent price", func(t *testing.T) {
		service := &catalogservice.Service{ID: 3, Name: "MRI Brain", Category: "mri", BasePrice: 2500, UrgentPrice: ptr.Ptr(750.0)}

		quote, err := svc.Quote(context.Background(), service, domain.AppointmentLabVisit, true, nil)
		require.NoError(t, err)
		assert.Equal(t, 750.0, quote.Amounts.UrgentFee)
	})

	t.Run("platform default fallback", func(t *testing.T) {
		service := &catalogservice.Service{ID: 4, Name: "X-Ray Chest", Category: "xray", BasePrice: 400}

		quote, err := svc.Quote(context.Background(), service, domain.AppointmentLabVisit, true, nil)
		require.NoError(t, err)
		assert.Equal(t, 500.0, quote.Amounts.UrgentFee)
	})
}

func TestQuote_DiscountedPricePreferred(t *testing.T) {
	svc := newTestService()
	service := &catalogservice.Service{ID: 5, Name: "Lipid Profile", Category: "blood-test", BasePrice: 1200, DiscountedPrice: ptr.Ptr(999.0)}

	quote, err := svc.Quote(context.Background(), service, domain.AppointmentLabVisit, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 999.0, quote.Amounts.BaseAmount)
}

func TestQuote_UnknownCouponIsWarning(t *testing.T) {
	svc := newTestService()
	service := &catalogservice.Service{ID: 6, Name: "CBC", Category: "blood-test", BasePrice: 300}

	quote, err := svc.Quote(context.Background(), service, domain.AppointmentLabVisit, false, ptr.Ptr("NOPE99"))
	require.NoError(t, err)

	assert.True(t, quote.InvalidCoupon)
	assert.False(t, quote.CouponApplied)
	assert.Equal(t, 0.0, quote.Amounts.Discount)
	assert.Equal(t, domain.Round2(300*1.18), quote.Amounts.TotalAmount)
}

func TestQuote_TaxableFlooredAtZero(t *testing.T) {
	svc := NewService(200, 0.18, 500, &fakeCouponResolver{coupons: map[string]float64{"MEGA": 10000}}, nopLogger{})
	service := &catalogservice.Service{ID: 7, Name: "CBC", Category: "blood-test", BasePrice: 300}

	quote, err := svc.Quote(context.Background(), service, domain.AppointmentLabVisit, false, ptr.Ptr("MEGA"))
	require.NoError(t, err)

	assert.Equal(t, 0.0, quote.Amounts.TaxAmount)
	assert.Equal(t, 0.0, quote.Amounts.TotalAmount)
}

// Для фиксированных входных данных два вызова дают идентичный результат
func TestQuote_Deterministic(t *testing.T) {
	svc := newTestService()
	service := &catalogservice.Service{ID: 8, Name: "CT Abdomen", Category: "ct", BasePrice: 3500, UrgentPrice: ptr.Ptr(900.0)}

	first, err := svc.Quote(context.Background(), service, domain.AppointmentLabVisit, true, ptr.Ptr("QUICK50"))
	require.NoError(t, err)

	second, err := svc.Quote(context.Background(), service, domain.AppointmentLabVisit, true, ptr.Ptr("QUICK50"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
