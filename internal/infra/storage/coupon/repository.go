package coupon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/psqlbuilder"
)

// Repository репозиторий купонов
// Таблица в БД вместо захардкоженной таблицы строк: новые купоны
// добавляются без деплоя, а калькулятор цен получает резолвер интерфейсом
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория купонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCode получает активный купон по коду
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("code", "discount", "active").
		From("coupons").
		Where(squirrel.Eq{"code": code, "active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Coupon
	err = executor.QueryRowContext(ctx, query, args...).Scan(&c.Code, &c.Discount, &c.Active)
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan coupon: %v", ErrScanRow, err)
	}

	return &c, nil
}
