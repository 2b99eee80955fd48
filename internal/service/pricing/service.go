package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	couponRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/coupon"
	"github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
)

// Quote результат расчёта стоимости
// InvalidCoupon - предупреждение, а не ошибка: бронирование продолжается без скидки
type Quote struct {
	Amounts       domain.Amounts
	CouponApplied bool
	InvalidCoupon bool
}

// Service калькулятор стоимости бронирования
// Расчёт детерминирован и не имеет побочных эффектов: одинаковые входные данные
// всегда дают одинаковый результат (котировка до оплаты и перепроверка при
// подтверждении обязаны совпадать)
type Service struct {
	homeServiceCharge float64
	taxRate           float64
	defaultUrgentFee  float64
	couponResolver    CouponResolver
	logger            Logger
}

// NewService создает новый калькулятор стоимости
func NewService(
	homeServiceCharge float64,
	taxRate float64,
	defaultUrgentFee float64,
	couponResolver CouponResolver,
	logger Logger,
) *Service {
	return &Service{
		homeServiceCharge: homeServiceCharge,
		taxRate:           taxRate,
		defaultUrgentFee:  defaultUrgentFee,
		couponResolver:    couponResolver,
		logger:            logger,
	}
}

// Quote считает детализированную стоимость услуги
// Порядок фиксирован: база -> надбавка за выезд -> надбавка за срочность ->
// скидка -> налог; округление до 2 знаков только в самом конце
func (s *Service) Quote(
	ctx context.Context,
	service *catalogservice.Service,
	appointmentType domain.AppointmentType,
	isUrgent bool,
	couponCode *string,
) (*Quote, error) {
	baseAmount := service.EffectiveBasePrice()

	var homeCharge float64
	if appointmentType == domain.AppointmentHomeService {
		homeCharge = s.homeServiceCharge
	}

	var urgentFee float64
	if isUrgent {
		urgentFee = s.defaultUrgentFee
		if service.UrgentPrice != nil {
			urgentFee = *service.UrgentPrice
		}
	}

	discount, couponApplied, invalidCoupon, err := s.resolveDiscount(ctx, couponCode)
	if err != nil {
		return nil, err
	}

	// Налогооблагаемая база не опускается ниже нуля
	taxable := baseAmount + homeCharge + urgentFee - discount
	if taxable < 0 {
		taxable = 0
	}

	taxAmount := taxable * s.taxRate

	amounts := domain.Amounts{
		BaseAmount:        domain.Round2(baseAmount),
		HomeServiceCharge: domain.Round2(homeCharge),
		UrgentFee:         domain.Round2(urgentFee),
		Discount:          domain.Round2(discount),
		TaxAmount:         domain.Round2(taxAmount),
		TotalAmount:       domain.Round2(taxable + taxAmount),
	}

	return &Quote{
		Amounts:       amounts,
		CouponApplied: couponApplied,
		InvalidCoupon: invalidCoupon,
	}, nil
}

// resolveDiscount резолвит купон в фиксированную скидку
// Неизвестный код не ломает расчёт: скидка 0 и флаг invalidCoupon для вызывающего
func (s *Service) resolveDiscount(ctx context.Context, couponCode *string) (discount float64, applied bool, invalid bool, err error) {
	if couponCode == nil || *couponCode == "" {
		return 0, false, false, nil
	}

	c, err := s.couponResolver.GetByCode(ctx, *couponCode)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			s.logger.Warn("Quote: unknown coupon code=%s, proceeding without discount", *couponCode)
			return 0, false, true, nil
		}
		s.logger.Error("Quote: failed to resolve coupon code=%s: %v", *couponCode, err)
		return 0, false, false, fmt.Errorf("%w: failed to resolve coupon: %v", ErrInternal, err)
	}

	return c.Discount, true, false, nil
}
