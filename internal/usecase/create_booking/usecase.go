package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	centercfgRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/centercfg"
	slotRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/slot"
	catalogClient "github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-DiagnosticsService/internal/integrations/notifyservice"
)

// notifyTimeout ограничивает фоновую отправку подтверждения
const notifyTimeout = 5 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	slotRepo       SlotRepository
	centerCfgRepo  CenterConfigRepository
	catalogClient  CatalogServiceClient
	notifyClient   NotifyServiceClient
	pricingService PricingService
	referral       ReferralService
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger

	slotUniverse        domain.SlotUniverse
	defaultSlotCapacity int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	centerCfgRepo CenterConfigRepository,
	catalogClient CatalogServiceClient,
	notifyClient NotifyServiceClient,
	pricingService PricingService,
	referral ReferralService,
	txManager TransactionManager,
	logger Logger,
	slotUniverse domain.SlotUniverse,
	defaultSlotCapacity int,
) *UseCase {
	return &UseCase{
		bookingRepo:         bookingRepo,
		slotRepo:            slotRepo,
		centerCfgRepo:       centerCfgRepo,
		catalogClient:       catalogClient,
		notifyClient:        notifyClient,
		pricingService:      pricingService,
		referral:            referral,
		txManager:           txManager,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
		slotUniverse:        slotUniverse,
		defaultSlotCapacity: defaultSlotCapacity,
	}
}

// Execute выполняет use case создания бронирования
// Резервирование слота, создание бронирования и атрибуция канала продаж
// выполняются в одной сериализуемой транзакции: при конфликте слота
// не остаётся ни частичного бронирования, ни висящей резервации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, center=%d, date=%s, slot=%s, urgent=%t",
		req.ServiceID, req.CenterID, req.AppointmentDate.Format(domain.DateFormat), req.TimeSlot, req.IsUrgent)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.AppointmentDate, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Слот должен принадлежать рабочей сетке
	inUniverse, err := uc.slotUniverse.Contains(req.TimeSlot)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check slot universe: %v", err)
		return nil, fmt.Errorf("%w: failed to check slot universe: %v", ErrInternal, err)
	}
	if !inUniverse {
		uc.logger.Warn("CreateBooking: time slot %s is outside working hours", req.TimeSlot)
		return nil, ErrInvalidTimeSlot
	}

	// 4. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем центр и проверяем, что он оказывает услугу
	center, err := uc.catalogClient.GetCenter(ctx, req.CenterID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCenterNotFound) {
			uc.logger.Warn("CreateBooking: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("CreateBooking: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	if !center.OffersService(req.ServiceID) {
		uc.logger.Warn("CreateBooking: center id=%d does not offer service id=%d", req.CenterID, req.ServiceID)
		return nil, ErrServiceNotOffered
	}

	// 6. Проверяем допустимость выезда на дом
	appointmentType := domain.AppointmentType(req.AppointmentType)
	if err := validateHomeServiceAllowed(service, appointmentType); err != nil {
		uc.logger.Warn("CreateBooking: home service check failed for service id=%d: %v", req.ServiceID, err)
		return nil, err
	}

	// 7. Считаем стоимость
	quote, err := uc.pricingService.Quote(ctx, service, appointmentType, req.IsUrgent, req.CouponCode)
	if err != nil {
		uc.logger.Error("CreateBooking: pricing failed: %v", err)
		return nil, fmt.Errorf("%w: pricing failed: %v", ErrInternal, err)
	}

	// 8. Генерируем номер бронирования
	bookingRef := newBookingRef(now)

	couponCode := req.CouponCode
	if quote.InvalidCoupon {
		// Невалидный купон не сохраняем
		couponCode = nil
	}

	paymentMethod := domain.PaymentMethodOnline
	if req.PaymentMethod != nil {
		paymentMethod = domain.PaymentMethod(*req.PaymentMethod)
	}

	var result *domain.Booking

	// 9. Резервируем слот и создаем бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 9.1. Вместимость слота: конфиг центра либо дефолт
		capacity := uc.defaultSlotCapacity
		cfg, err := uc.centerCfgRepo.GetByCenter(txCtx, req.CenterID)
		if err != nil && !errors.Is(err, centercfgRepo.ErrConfigNotFound) {
			uc.logger.Error("CreateBooking: failed to get center config: %v", err)
			return fmt.Errorf("%w: failed to get center config: %v", ErrInternal, err)
		}
		if cfg != nil {
			capacity = cfg.SlotCapacity
		}

		// 9.2. Атомарно резервируем место в слоте
		_, err = uc.slotRepo.Reserve(txCtx, req.CenterID, req.AppointmentDate, req.TimeSlot, capacity, bookingRef)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s on %s is fully booked at center id=%d",
					req.TimeSlot, req.AppointmentDate.Format(domain.DateFormat), req.CenterID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to reserve slot: %v", err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		// 9.3. Создаем бронирование с денормализацией услуги и центра
		booking := &domain.Booking{
			BookingRef:      bookingRef,
			PatientName:     strings.TrimSpace(req.PatientName),
			PatientAge:      req.PatientAge,
			PatientGender:   req.PatientGender,
			PatientEmail:    req.PatientEmail,
			PatientPhone:    req.PatientPhone,
			ServiceID:       service.ID,
			ServiceName:     service.Name,
			ServiceCategory: service.Category,
			CenterID:        center.ID,
			CenterName:      center.Name,
			CenterAddress:   center.Address,
			AppointmentType: appointmentType,
			HomeAddress:     req.HomeAddress,
			PostalCode:      req.PostalCode,
			AppointmentDate: req.AppointmentDate,
			TimeSlot:        req.TimeSlot,
			IsUrgent:        req.IsUrgent,

			BaseAmount:        quote.Amounts.BaseAmount,
			HomeServiceCharge: quote.Amounts.HomeServiceCharge,
			UrgentFee:         quote.Amounts.UrgentFee,
			Discount:          quote.Amounts.Discount,
			TaxAmount:         quote.Amounts.TaxAmount,
			TotalAmount:       quote.Amounts.TotalAmount,

			Status:        domain.StatusPending,
			PaymentStatus: domain.PaymentPending,
			PaymentMethod: paymentMethod,
			ReferralCode:  req.ReferralCode,
			CouponCode:    couponCode,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 9.4. Атрибуция канала продаж: неизвестный код игнорируется
		if _, err := uc.referral.Attribute(txCtx, req.ReferralCode, bookingRef, created.TotalAmount); err != nil {
			uc.logger.Error("CreateBooking: referral attribution failed: %v", err)
			return fmt.Errorf("%w: referral attribution failed: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking_ref=%s, total=%.2f", result.BookingRef, result.TotalAmount)

	// 10. Отправляем подтверждение в фоне - ошибка уведомления не откатывает бронирование
	go uc.sendConfirmation(result)

	return &Response{
		BookingRef:      result.BookingRef,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		AppointmentDate: result.AppointmentDate,
		TimeSlot:        result.TimeSlot,

		BaseAmount:        result.BaseAmount,
		HomeServiceCharge: result.HomeServiceCharge,
		UrgentFee:         result.UrgentFee,
		Discount:          result.Discount,
		TaxAmount:         result.TaxAmount,
		TotalAmount:       result.TotalAmount,

		PaymentRequired: result.PaymentRequired(),
		InvalidCoupon:   quote.InvalidCoupon,

		CreatedAt: result.CreatedAt,
	}, nil
}

func (uc *UseCase) sendConfirmation(booking *domain.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	msg := &notifyservice.ConfirmationMessage{
		BookingRef:      booking.BookingRef,
		PatientName:     booking.PatientName,
		PatientEmail:    booking.PatientEmail,
		PatientPhone:    booking.PatientPhone,
		ServiceName:     booking.ServiceName,
		CenterName:      booking.CenterName,
		AppointmentDate: booking.AppointmentDate.Format(domain.DateFormat),
		TimeSlot:        string(booking.TimeSlot),
		TotalAmount:     booking.TotalAmount,
	}

	if err := uc.notifyClient.SendConfirmation(ctx, msg); err != nil {
		uc.logger.Warn("CreateBooking: confirmation notification failed for booking_ref=%s: %v", booking.BookingRef, err)
	}
}

// newBookingRef генерирует человекочитаемый номер бронирования DGB-YYYYMMDD-xxxxxxxx
func newBookingRef(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", domain.BookingRefPrefix, now.Format("20060102"), suffix)
}
