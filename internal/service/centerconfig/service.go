package centerconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/centercfg"
)

// maxSlotCapacity верхняя граница вместимости слота
const maxSlotCapacity = 50

// CenterConfig вместимость слота центра
// IsDefault = true, когда центр не настроен и действует дефолтная вместимость
type CenterConfig struct {
	CenterID     int64
	SlotCapacity int
	IsDefault    bool
}

// Service сервис конфигурации слотов центров
type Service struct {
	repo            ConfigRepository
	defaultCapacity int
	logger          Logger
}

// NewService создает новый сервис конфигурации
func NewService(repo ConfigRepository, defaultCapacity int, logger Logger) *Service {
	return &Service{
		repo:            repo,
		defaultCapacity: defaultCapacity,
		logger:          logger,
	}
}

// Get возвращает вместимость слота центра
// Ненастроенный центр - не ошибка: возвращается дефолтная вместимость
func (s *Service) Get(ctx context.Context, centerID int64) (*CenterConfig, error) {
	if centerID <= 0 {
		return nil, fmt.Errorf("%w: centerId must be positive", ErrInvalidInput)
	}

	cfg, err := s.repo.GetByCenter(ctx, centerID)
	if err != nil {
		if errors.Is(err, centercfg.ErrConfigNotFound) {
			return &CenterConfig{
				CenterID:     centerID,
				SlotCapacity: s.defaultCapacity,
				IsDefault:    true,
			}, nil
		}
		s.logger.Error("Get: repository error for center id=%d: %v", centerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return &CenterConfig{
		CenterID:     cfg.CenterID,
		SlotCapacity: cfg.SlotCapacity,
	}, nil
}

// Update задает вместимость слота центра
// Уже выданные резервации не пересматриваются - новая вместимость действует
// для последующих бронирований
func (s *Service) Update(ctx context.Context, centerID int64, slotCapacity int) (*CenterConfig, error) {
	if centerID <= 0 {
		return nil, fmt.Errorf("%w: centerId must be positive", ErrInvalidInput)
	}
	if slotCapacity < 1 || slotCapacity > maxSlotCapacity {
		return nil, fmt.Errorf("%w: slotCapacity must be between 1 and %d", ErrInvalidInput, maxSlotCapacity)
	}

	cfg, err := s.repo.Upsert(ctx, centerID, slotCapacity)
	if err != nil {
		s.logger.Error("Update: repository error for center id=%d: %v", centerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: center id=%d slot capacity set to %d", centerID, slotCapacity)
	return &CenterConfig{
		CenterID:     cfg.CenterID,
		SlotCapacity: cfg.SlotCapacity,
	}, nil
}
