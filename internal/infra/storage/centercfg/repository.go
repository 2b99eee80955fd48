package centercfg

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DiagnosticsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/psqlbuilder"
)

// CenterSlotConfig вместимость слота конкретного центра
// Центры без записи используют дефолтную вместимость из конфига сервиса
type CenterSlotConfig struct {
	ID           int64
	CenterID     int64
	SlotCapacity int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Repository репозиторий конфигурации слотов центров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCenter получает конфигурацию слотов центра
func (r *Repository) GetByCenter(ctx context.Context, centerID int64) (*CenterSlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "center_id", "slot_capacity", "created_at", "updated_at").
		From("center_slot_configs").
		Where(squirrel.Eq{"center_id": centerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCenter - build select query: %v", ErrBuildQuery, err)
	}

	var cfg CenterSlotConfig
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.CenterID,
		&cfg.SlotCapacity,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCenter - scan config: %v", ErrScanRow, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// Upsert создает или обновляет конфигурацию слотов центра
func (r *Repository) Upsert(ctx context.Context, centerID int64, slotCapacity int) (*CenterSlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("center_slot_configs").
		Columns("center_id", "slot_capacity").
		Values(centerID, slotCapacity).
		Suffix("ON CONFLICT (center_id) DO UPDATE SET slot_capacity = EXCLUDED.slot_capacity, updated_at = NOW() RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	cfg := &CenterSlotConfig{CenterID: centerID, SlotCapacity: slotCapacity}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}
