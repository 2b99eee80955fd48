package referral

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/psqlbuilder"
)

// Repository репозиторий каналов продаж и реферального леджера
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetChannelByCode получает активный канал продаж по реферальному коду
func (r *Repository) GetChannelByCode(ctx context.Context, code string) (*domain.SalesChannel, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "code", "name", "commission_rate", "active").
		From("sales_channels").
		Where(squirrel.Eq{"code": code, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetChannelByCode - build select query: %v", ErrBuildQuery, err)
	}

	var channel domain.SalesChannel
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&channel.ID,
		&channel.Code,
		&channel.Name,
		&channel.CommissionRate,
		&channel.Active,
	)

	if err == sql.ErrNoRows {
		return nil, ErrChannelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetChannelByCode - scan channel: %v", ErrScanRow, err)
	}

	return &channel, nil
}

// CreateLedgerEntry создает запись о комиссии
// Идемпотентно по booking_ref: UNIQUE(booking_ref) + ON CONFLICT DO NOTHING
// гарантируют не более одного начисления на бронирование; запись неизменяема
func (r *Repository) CreateLedgerEntry(ctx context.Context, entry *domain.ReferralLedgerEntry) (*domain.ReferralLedgerEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("referral_ledger").
		Columns("sales_channel_id", "booking_ref", "commission_amount").
		Values(entry.SalesChannelID, entry.BookingRef, entry.CommissionAmount).
		Suffix("ON CONFLICT (booking_ref) DO NOTHING RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateLedgerEntry - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt)
	if err == sql.ErrNoRows {
		// Запись уже существует - повторное начисление не создаём
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateLedgerEntry - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	return entry, nil
}
