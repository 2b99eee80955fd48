package referral

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	referralRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/referral"
)

// Service атрибуция бронирований каналам продаж
type Service struct {
	repo   ChannelRepository
	logger Logger
}

// NewService создает новый сервис атрибуции
func NewService(repo ChannelRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Attribute начисляет комиссию каналу продаж по реферальному коду
// Реферальный код - рекомендация, а не требование: неизвестный код игнорируется
// и бронирование остаётся без атрибуции (nil, nil). Начисление идемпотентно
// по бронированию - повторный вызов не создаёт вторую запись
func (s *Service) Attribute(ctx context.Context, referralCode *string, bookingRef string, totalAmount float64) (*domain.ReferralLedgerEntry, error) {
	if referralCode == nil || *referralCode == "" {
		return nil, nil
	}

	channel, err := s.repo.GetChannelByCode(ctx, *referralCode)
	if err != nil {
		if errors.Is(err, referralRepo.ErrChannelNotFound) {
			s.logger.Info("Attribute: unknown referral code=%s, booking_ref=%s proceeds unattributed", *referralCode, bookingRef)
			return nil, nil
		}
		s.logger.Error("Attribute: failed to resolve referral code=%s: %v", *referralCode, err)
		return nil, fmt.Errorf("%w: failed to resolve referral code: %v", ErrInternal, err)
	}

	entry := &domain.ReferralLedgerEntry{
		SalesChannelID:   channel.ID,
		BookingRef:       bookingRef,
		CommissionAmount: domain.Round2(totalAmount * channel.CommissionRate),
	}

	created, err := s.repo.CreateLedgerEntry(ctx, entry)
	if err != nil {
		s.logger.Error("Attribute: failed to create ledger entry for booking_ref=%s: %v", bookingRef, err)
		return nil, fmt.Errorf("%w: failed to create ledger entry: %v", ErrInternal, err)
	}

	if created == nil {
		// Запись уже существовала
		s.logger.Info("Attribute: ledger entry already exists for booking_ref=%s", bookingRef)
		return nil, nil
	}

	s.logger.Info("Attribute: commission=%.2f attributed to channel=%s for booking_ref=%s",
		created.CommissionAmount, channel.Code, bookingRef)
	return created, nil
}
