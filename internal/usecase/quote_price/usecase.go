package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	catalogClient "github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
)

// UseCase use case для котировки стоимости без создания бронирования
// Никаких побочных эффектов: ни резервации слота, ни записи в БД
type UseCase struct {
	catalogClient  CatalogServiceClient
	pricingService PricingService
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogClient CatalogServiceClient,
	pricingService PricingService,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogClient:  catalogClient,
		pricingService: pricingService,
		logger:         logger,
	}
}

// Execute выполняет расчёт котировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: service=%d, type=%s, urgent=%t", req.ServiceID, req.AppointmentType, req.IsUrgent)

	// 1. Валидация входных данных
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	appointmentType := domain.AppointmentType(req.AppointmentType)
	if appointmentType != domain.AppointmentLabVisit && appointmentType != domain.AppointmentHomeService {
		return nil, fmt.Errorf("%w: appointmentType must be lab-visit or home-service", ErrInvalidInput)
	}

	// 2. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("QuotePrice: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("QuotePrice: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Считаем стоимость
	quote, err := uc.pricingService.Quote(ctx, service, appointmentType, req.IsUrgent, req.CouponCode)
	if err != nil {
		uc.logger.Error("QuotePrice: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	return &Response{
		ServiceID:   service.ID,
		ServiceName: service.Name,

		BaseAmount:        quote.Amounts.BaseAmount,
		HomeServiceCharge: quote.Amounts.HomeServiceCharge,
		UrgentFee:         quote.Amounts.UrgentFee,
		Discount:          quote.Amounts.Discount,
		TaxAmount:         quote.Amounts.TaxAmount,
		TotalAmount:       quote.Amounts.TotalAmount,

		CouponApplied: quote.CouponApplied,
		InvalidCoupon: quote.InvalidCoupon,
	}, nil
}
