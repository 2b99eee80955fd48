package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings/models"
)

// reaperCancellationReason причина отмены, проставляемая TTL-репером
const reaperCancellationReason = "payment not received in time"

// Service сервис жизненного цикла бронирований
// Все переходы статусов проверяются доменными правилами и выполняются
// guarded-обновлением: конкурентный переход или двойная отправка не
// перезаписывают чужой результат
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByRef получает бронирование по номеру
func (s *Service) GetByRef(ctx context.Context, bookingRef string) (*models.BookingResponse, error) {
	booking, err := s.fetch(ctx, bookingRef, "GetByRef")
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(booking), nil
}

// GetPatientBookings получает историю бронирований пациента
// Опционально фильтрует по статусу
func (s *Service) GetPatientBookings(ctx context.Context, req *models.GetPatientBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPatientBookings: fetching bookings for email=%s, status=%v", req.PatientEmail, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPatientBookings: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByPatientEmail(ctx, req.PatientEmail, domainStatus)
	if err != nil {
		s.logger.Error("GetPatientBookings: repository error for email=%s: %v", req.PatientEmail, err)
		return nil, fmt.Errorf("%w: GetPatientBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPatientBookings: fetched %d bookings for email=%s", len(bookings), req.PatientEmail)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm переводит бронирование pending -> confirmed
// Подтверждение запрещено при неуспешной оплате
func (s *Service) Confirm(ctx context.Context, bookingRef string) (*models.StatusResponse, error) {
	s.logger.Info("Confirm: confirming booking_ref=%s", bookingRef)

	booking, err := s.fetch(ctx, bookingRef, "Confirm")
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateTransition(booking.Status, domain.StatusConfirmed); err != nil {
		s.logger.Warn("Confirm: invalid transition for booking_ref=%s: %v", bookingRef, err)
		return nil, err
	}

	if booking.PaymentStatus == domain.PaymentFailed {
		s.logger.Warn("Confirm: booking_ref=%s has failed payment", bookingRef)
		return nil, ErrPaymentFailed
	}

	if err := s.updateStatus(ctx, booking, domain.StatusConfirmed, "Confirm"); err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: booking_ref=%s confirmed", bookingRef)
	return &models.StatusResponse{
		BookingRef:    bookingRef,
		Status:        string(domain.StatusConfirmed),
		PaymentStatus: string(booking.PaymentStatus),
	}, nil
}

// Cancel отменяет бронирование и освобождает его слот
// Отмена разрешена только из pending/confirmed; оплаченное бронирование
// помечается на возврат средств (сам возврат выполняет внешняя система)
func (s *Service) Cancel(ctx context.Context, bookingRef string, req *models.CancelBookingRequest) (*models.StatusResponse, error) {
	s.logger.Info("Cancel: cancelling booking_ref=%s", bookingRef)

	var resp *models.StatusResponse

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.fetch(txCtx, bookingRef, "Cancel")
		if err != nil {
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking_ref=%s cannot be cancelled, status=%s", bookingRef, booking.Status)
			return &domain.InvalidTransitionError{From: booking.Status, To: domain.StatusCancelled}
		}

		err = s.bookingRepo.Cancel(txCtx, booking.ID, req.CancellationReason,
			[]domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrStaleStatus) {
				s.logger.Warn("Cancel: booking_ref=%s status changed concurrently", bookingRef)
				return &domain.InvalidTransitionError{From: booking.Status, To: domain.StatusCancelled}
			}
			s.logger.Error("Cancel: repository error for booking_ref=%s: %v", bookingRef, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Освобождаем слот - он снова становится доступным
		if err := s.slotRepo.ReleaseByBookingRef(txCtx, bookingRef); err != nil {
			if !errors.Is(err, slotRepo.ErrReservationNotFound) {
				s.logger.Error("Cancel: failed to release slot for booking_ref=%s: %v", bookingRef, err)
				return fmt.Errorf("%w: Cancel - failed to release slot: %v", ErrInternal, err)
			}
			s.logger.Warn("Cancel: no reservation found for booking_ref=%s", bookingRef)
		}

		paymentStatus := booking.PaymentStatus

		// Оплаченное бронирование помечаем на возврат
		if booking.PaymentStatus == domain.PaymentPaid {
			err := s.bookingRepo.UpdatePaymentStatusFrom(txCtx, booking.ID, domain.PaymentPaid, domain.PaymentRefunded, nil)
			if err != nil {
				s.logger.Error("Cancel: failed to mark refund for booking_ref=%s: %v", bookingRef, err)
				return fmt.Errorf("%w: Cancel - failed to mark refund: %v", ErrInternal, err)
			}
			paymentStatus = domain.PaymentRefunded
		}

		resp = &models.StatusResponse{
			BookingRef:    bookingRef,
			Status:        string(domain.StatusCancelled),
			PaymentStatus: string(paymentStatus),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: booking_ref=%s cancelled", bookingRef)
	return resp, nil
}

// Advance продвигает бронирование на один шаг пайплайна обработки
// (confirmed -> sample-collected -> processing -> completed)
// Если target задан и не совпадает со следующим шагом - переход отклоняется:
// пропуск стадий запрещён
func (s *Service) Advance(ctx context.Context, bookingRef string, target *string) (*models.StatusResponse, error) {
	s.logger.Info("Advance: advancing booking_ref=%s", bookingRef)

	booking, err := s.fetch(ctx, bookingRef, "Advance")
	if err != nil {
		return nil, err
	}

	var next domain.BookingStatus
	if target != nil {
		next, err = models.ToDomainBookingStatus(*target)
		if err != nil {
			s.logger.Warn("Advance: invalid target status=%s for booking_ref=%s", *target, bookingRef)
			return nil, fmt.Errorf("%w: invalid target status", ErrInvalidInput)
		}
		if err := domain.ValidateTransition(booking.Status, next); err != nil {
			s.logger.Warn("Advance: invalid transition for booking_ref=%s: %v", bookingRef, err)
			return nil, err
		}
		if next == domain.StatusCancelled || next == domain.StatusConfirmed {
			// Отмена и подтверждение имеют собственные операции
			return nil, &domain.InvalidTransitionError{From: booking.Status, To: next}
		}
	} else {
		next, err = domain.NextStatus(booking.Status)
		if err != nil {
			s.logger.Warn("Advance: booking_ref=%s cannot advance from status=%s", bookingRef, booking.Status)
			return nil, err
		}
	}

	if err := s.updateStatus(ctx, booking, next, "Advance"); err != nil {
		return nil, err
	}

	s.logger.Info("Advance: booking_ref=%s advanced %s -> %s", bookingRef, booking.Status, next)
	return &models.StatusResponse{
		BookingRef:    bookingRef,
		Status:        string(next),
		PaymentStatus: string(booking.PaymentStatus),
	}, nil
}

// RecordPayment фиксирует результат оплаты (сам платёжный протокол - внешний)
func (s *Service) RecordPayment(ctx context.Context, bookingRef string, req *models.RecordPaymentRequest) (*models.StatusResponse, error) {
	s.logger.Info("RecordPayment: booking_ref=%s, status=%s", bookingRef, req.PaymentStatus)

	booking, err := s.fetch(ctx, bookingRef, "RecordPayment")
	if err != nil {
		return nil, err
	}

	newStatus, err := models.ToDomainPaymentStatus(req.PaymentStatus)
	if err != nil {
		s.logger.Warn("RecordPayment: invalid payment status=%s", req.PaymentStatus)
		return nil, fmt.Errorf("%w: invalid payment status", ErrInvalidInput)
	}

	var method *domain.PaymentMethod
	if req.PaymentMethod != nil {
		m, err := models.ToDomainPaymentMethod(*req.PaymentMethod)
		if err != nil {
			s.logger.Warn("RecordPayment: invalid payment method=%s", *req.PaymentMethod)
			return nil, fmt.Errorf("%w: invalid payment method", ErrInvalidInput)
		}
		method = &m
	}

	if err := domain.ValidatePaymentTransition(booking.PaymentStatus, newStatus, booking.Status); err != nil {
		s.logger.Warn("RecordPayment: invalid payment transition for booking_ref=%s: %v", bookingRef, err)
		return nil, err
	}

	err = s.bookingRepo.UpdatePaymentStatusFrom(ctx, booking.ID, booking.PaymentStatus, newStatus, method)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("RecordPayment: booking_ref=%s payment status changed concurrently", bookingRef)
			return nil, &domain.InvalidPaymentTransitionError{From: booking.PaymentStatus, To: newStatus}
		}
		s.logger.Error("RecordPayment: repository error for booking_ref=%s: %v", bookingRef, err)
		return nil, fmt.Errorf("%w: RecordPayment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RecordPayment: booking_ref=%s payment %s -> %s", bookingRef, booking.PaymentStatus, newStatus)
	return &models.StatusResponse{
		BookingRef:    bookingRef,
		Status:        string(booking.Status),
		PaymentStatus: string(newStatus),
	}, nil
}

// CancelStalePending отменяет pending-бронирования, не оплаченные за ttl
// Вызывается репером; каждое бронирование отменяется в собственной транзакции,
// чтобы одна ошибка не останавливала весь проход
func (s *Service) CancelStalePending(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := s.timeProvider.Now().Add(-ttl)

	stale, err := s.bookingRepo.ListStalePending(ctx, cutoff)
	if err != nil {
		s.logger.Error("CancelStalePending: failed to list stale bookings: %v", err)
		return 0, fmt.Errorf("%w: CancelStalePending - repository error: %v", ErrInternal, err)
	}

	cancelled := 0
	for _, booking := range stale {
		_, err := s.Cancel(ctx, booking.BookingRef, &models.CancelBookingRequest{
			CancellationReason: reaperCancellationReason,
		})
		if err != nil {
			s.logger.Error("CancelStalePending: failed to cancel booking_ref=%s: %v", booking.BookingRef, err)
			continue
		}
		cancelled++
	}

	if cancelled > 0 {
		s.logger.Info("CancelStalePending: cancelled %d stale pending bookings", cancelled)
	}
	return cancelled, nil
}

// Вспомогательные методы

func (s *Service) fetch(ctx context.Context, bookingRef string, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByRef(ctx, bookingRef)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking_ref=%s not found", op, bookingRef)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking_ref=%s: %v", op, bookingRef, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) updateStatus(ctx context.Context, booking *domain.Booking, to domain.BookingStatus, op string) error {
	err := s.bookingRepo.UpdateStatusFrom(ctx, booking.ID, booking.Status, to)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStaleStatus) {
			s.logger.Warn("%s: booking_ref=%s status changed concurrently", op, booking.BookingRef)
			return &domain.InvalidTransitionError{From: booking.Status, To: to}
		}
		s.logger.Error("%s: repository error for booking_ref=%s: %v", op, booking.BookingRef, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}
