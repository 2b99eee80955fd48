package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"booking_ref",
	"patient_name",
	"patient_age",
	"patient_gender",
	"patient_email",
	"patient_phone",
	"service_id",
	"service_name",
	"service_category",
	"center_id",
	"center_name",
	"center_address",
	"appointment_type",
	"home_address",
	"postal_code",
	"appointment_date",
	"time_slot",
	"is_urgent",
	"base_amount",
	"home_service_charge",
	"urgent_fee",
	"discount",
	"tax_amount",
	"total_amount",
	"status",
	"payment_status",
	"payment_method",
	"referral_code",
	"coupon_code",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вызывается внутри сериализуемой транзакции вместе с резервированием слота,
// чтобы при конфликте слота не оставалось частично созданного бронирования
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_ref",
			"patient_name",
			"patient_age",
			"patient_gender",
			"patient_email",
			"patient_phone",
			"service_id",
			"service_name",
			"service_category",
			"center_id",
			"center_name",
			"center_address",
			"appointment_type",
			"home_address",
			"postal_code",
			"appointment_date",
			"time_slot",
			"is_urgent",
			"base_amount",
			"home_service_charge",
			"urgent_fee",
			"discount",
			"tax_amount",
			"total_amount",
			"status",
			"payment_status",
			"payment_method",
			"referral_code",
			"coupon_code",
		).
		Values(
			booking.BookingRef,
			booking.PatientName,
			booking.PatientAge,
			booking.PatientGender,
			booking.PatientEmail,
			booking.PatientPhone,
			booking.ServiceID,
			booking.ServiceName,
			booking.ServiceCategory,
			booking.CenterID,
			booking.CenterName,
			booking.CenterAddress,
			booking.AppointmentType,
			booking.HomeAddress,
			booking.PostalCode,
			booking.AppointmentDate,
			booking.TimeSlot,
			booking.IsUrgent,
			booking.BaseAmount,
			booking.HomeServiceCharge,
			booking.UrgentFee,
			booking.Discount,
			booking.TaxAmount,
			booking.TotalAmount,
			booking.Status,
			booking.PaymentStatus,
			booking.PaymentMethod,
			booking.ReferralCode,
			booking.CouponCode,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByRef получает бронирование по человекочитаемому номеру
func (r *Repository) GetByRef(ctx context.Context, bookingRef string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_ref": bookingRef}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRef - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBookingRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRef - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByPatientEmail получает историю бронирований пациента
// Опционально фильтрует по статусу, сортировка - сначала новые
func (r *Repository) GetByPatientEmail(ctx context.Context, email string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"patient_email": email}).
		OrderBy("appointment_date DESC, time_slot DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatientEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatientEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListStalePending получает pending-бронирования с неоплаченным платежом,
// созданные раньше cutoff. Используется TTL-репером
func (r *Repository) ListStalePending(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where(squirrel.Eq{"payment_status": domain.PaymentPending}).
		Where(squirrel.Lt{"created_at": cutoff}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListStalePending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListStalePending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatusFrom переводит бронирование из ожидаемого статуса в новый
// Guarded-обновление: если строка уже не в статусе from (конкурентный переход),
// запрос не затрагивает строк и возвращается ErrStaleStatus
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "UpdateStatusFrom")
}

// UpdatePaymentStatusFrom переводит статус оплаты из ожидаемого в новый
func (r *Repository) UpdatePaymentStatusFrom(ctx context.Context, id int64, from, to domain.PaymentStatus, method *domain.PaymentMethod) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("payment_status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "payment_status": from})

	if method != nil {
		updateBuilder = updateBuilder.Set("payment_method", *method)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "UpdatePaymentStatusFrom")
}

// Cancel отменяет бронирование с указанием причины
// Guard по списку статусов, из которых отмена разрешена
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, from []domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromStrings := make([]string, len(from))
	for i, s := range from {
		fromStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": fromStrings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "Cancel")
}

// execGuarded выполняет guarded-обновление и различает "не найдено" от "статус устарел"
func (r *Repository) execGuarded(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStaleStatus
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBookingRow(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingRef,
		&booking.PatientName,
		&booking.PatientAge,
		&booking.PatientGender,
		&booking.PatientEmail,
		&booking.PatientPhone,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.ServiceCategory,
		&booking.CenterID,
		&booking.CenterName,
		&booking.CenterAddress,
		&booking.AppointmentType,
		&booking.HomeAddress,
		&booking.PostalCode,
		&booking.AppointmentDate,
		&booking.TimeSlot,
		&booking.IsUrgent,
		&booking.BaseAmount,
		&booking.HomeServiceCharge,
		&booking.UrgentFee,
		&booking.Discount,
		&booking.TaxAmount,
		&booking.TotalAmount,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PaymentMethod,
		&booking.ReferralCode,
		&booking.CouponCode,
		&booking.CancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
