package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	centercfgRepo "github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/centercfg"
	catalogClient "github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов центра на дату
type UseCase struct {
	slotRepo      SlotRepository
	centerCfgRepo CenterConfigRepository
	catalogClient CatalogServiceClient
	timeProvider  TimeProvider
	logger        Logger

	slotUniverse        domain.SlotUniverse
	defaultSlotCapacity int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	centerCfgRepo CenterConfigRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
	slotUniverse domain.SlotUniverse,
	defaultSlotCapacity int,
) *UseCase {
	return &UseCase{
		slotRepo:            slotRepo,
		centerCfgRepo:       centerCfgRepo,
		catalogClient:       catalogClient,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
		slotUniverse:        slotUniverse,
		defaultSlotCapacity: defaultSlotCapacity,
	}
}

// Execute возвращает слоты рабочей сетки с количеством свободных мест
// Сетка статична: слоты не генерируются по загрузке, меняется только
// число свободных мест
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: center=%d, date=%s", req.CenterID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.CenterID <= 0 {
		return nil, fmt.Errorf("%w: centerId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Проверяем существование центра
	if _, err := uc.catalogClient.GetCenter(ctx, req.CenterID); err != nil {
		if errors.Is(err, catalogClient.ErrCenterNotFound) {
			uc.logger.Warn("GetAvailableSlots: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	// 3. На прошедшую дату запись невозможна - пустой список, не ошибка
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return &Response{CenterID: req.CenterID, Date: req.Date, Slots: []Slot{}}, nil
	}

	// 4. Вместимость слота: конфиг центра либо дефолт
	capacity := uc.defaultSlotCapacity
	cfg, err := uc.centerCfgRepo.GetByCenter(ctx, req.CenterID)
	if err != nil && !errors.Is(err, centercfgRepo.ErrConfigNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get center config: %v", err)
		return nil, fmt.Errorf("%w: failed to get center config: %v", ErrInternal, err)
	}
	if cfg != nil {
		capacity = cfg.SlotCapacity
	}

	// 5. Считаем занятые места по слотам
	reserved, err := uc.slotRepo.CountByCenterAndDate(ctx, req.CenterID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
	}

	// 6. Накладываем занятость на статичную сетку
	universe, err := uc.slotUniverse.Slots()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slot universe: %v", err)
		return nil, fmt.Errorf("%w: failed to build slot universe: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(universe))
	for _, timeSlot := range universe {
		available := capacity - reserved[timeSlot]
		if available < 0 {
			available = 0
		}
		slots = append(slots, Slot{
			TimeSlot:       timeSlot,
			AvailableSpots: available,
			TotalSpots:     capacity,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for center=%d, date=%s",
		len(slots), req.CenterID, req.Date.Format(domain.DateFormat))

	return &Response{
		CenterID: req.CenterID,
		Date:     req.Date,
		Slots:    slots,
	}, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
