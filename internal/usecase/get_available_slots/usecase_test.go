package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	"github.com/m04kA/SMC-DiagnosticsService/internal/infra/storage/centercfg"
	"github.com/m04kA/SMC-DiagnosticsService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/types"
)

type fakeSlotRepo struct {
	counts map[types.TimeSlot]int
}

func (f *fakeSlotRepo) CountByCenterAndDate(_ context.Context, _ int64, _ time.Time) (map[types.TimeSlot]int, error) {
	return f.counts, nil
}

type fakeCenterCfgRepo struct {
	capacity *int
}

func (f *fakeCenterCfgRepo) GetByCenter(_ context.Context, centerID int64) (*centercfg.CenterSlotConfig, error) {
	if f.capacity == nil {
		return nil, centercfg.ErrConfigNotFound
	}
	return &centercfg.CenterSlotConfig{CenterID: centerID, SlotCapacity: *f.capacity}, nil
}

type fakeCatalogClient struct {
	centers map[int64]*catalogservice.Center
}

func (f *fakeCatalogClient) GetCenter(_ context.Context, centerID int64) (*catalogservice.Center, error) {
	c, ok := f.centers[centerID]
	if !ok {
		return nil, catalogservice.ErrCenterNotFound
	}
	return c, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func defaultUniverse(t *testing.T) domain.SlotUniverse {
	t.Helper()

	openTime, err := types.NewTimeStringFromString(domain.DefaultSlotOpenTime)
	require.NoError(t, err)
	closeTime, err := types.NewTimeStringFromString(domain.DefaultSlotCloseTime)
	require.NoError(t, err)

	return domain.SlotUniverse{OpenTime: openTime, CloseTime: closeTime, DurationMinutes: domain.DefaultSlotDurationMinutes}
}

func newUseCase(t *testing.T, slots *fakeSlotRepo, cfg *fakeCenterCfgRepo) *UseCase {
	t.Helper()

	catalog := &fakeCatalogClient{centers: map[int64]*catalogservice.Center{
		10: {ID: 10, Name: "Central Lab"},
	}}

	uc := NewUseCase(slots, cfg, catalog, nopLogger{}, defaultUniverse(t), domain.DefaultSlotCapacity)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_FixedUniverse(t *testing.T) {
	uc := newUseCase(t, &fakeSlotRepo{}, &fakeCenterCfgRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		CenterID: 10,
		Date:     time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// 09:00-18:00 по часу - девять слотов
	require.Len(t, resp.Slots, 9)
	assert.Equal(t, "09:00-10:00", string(resp.Slots[0].TimeSlot))
	assert.Equal(t, "17:00-18:00", string(resp.Slots[8].TimeSlot))

	for _, slot := range resp.Slots {
		assert.Equal(t, 1, slot.AvailableSpots)
		assert.Equal(t, 1, slot.TotalSpots)
	}
}

func TestExecute_ReservedSlotsSubtracted(t *testing.T) {
	taken, err := types.NewTimeSlotFromString("10:00-11:00")
	require.NoError(t, err)

	capacity := 2
	uc := newUseCase(t,
		&fakeSlotRepo{counts: map[types.TimeSlot]int{taken: 2}},
		&fakeCenterCfgRepo{capacity: &capacity},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		CenterID: 10,
		Date:     time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		if slot.TimeSlot == taken {
			assert.Equal(t, 0, slot.AvailableSpots)
		} else {
			assert.Equal(t, 2, slot.AvailableSpots)
		}
		assert.Equal(t, 2, slot.TotalSpots)
	}
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	uc := newUseCase(t, &fakeSlotRepo{}, &fakeCenterCfgRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		CenterID: 10,
		Date:     time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_CenterNotFound(t *testing.T) {
	uc := newUseCase(t, &fakeSlotRepo{}, &fakeCenterCfgRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		CenterID: 99,
		Date:     time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrCenterNotFound)
}
