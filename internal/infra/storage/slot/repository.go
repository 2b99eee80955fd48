package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DiagnosticsService/internal/domain"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DiagnosticsService/pkg/types"
)

// Repository репозиторий резерваций слотов
// Таблица slot_reservations несёт UNIQUE(center_id, appointment_date, time_slot, slot_no):
// резервирование - это единственная операция, требующая межзапросного взаимного
// исключения, и выполняется одним атомарным условным INSERT, никогда read-then-write
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория резерваций
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve резервирует место в слоте для бронирования
// Перебирает номера мест [0, capacity): каждый INSERT идёт через
// ON CONFLICT DO NOTHING, поэтому занятое место не роняет транзакцию -
// пустой RETURNING означает "занято, пробуем следующее".
// Когда все места заняты - ErrSlotTaken
func (r *Repository) Reserve(
	ctx context.Context,
	centerID int64,
	date time.Time,
	timeSlot types.TimeSlot,
	capacity int,
	bookingRef string,
) (*domain.SlotReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for slotNo := 0; slotNo < capacity; slotNo++ {
		query, args, err := psqlbuilder.Insert("slot_reservations").
			Columns("center_id", "appointment_date", "time_slot", "slot_no", "booking_ref").
			Values(centerID, date, timeSlot, slotNo, bookingRef).
			Suffix("ON CONFLICT (center_id, appointment_date, time_slot, slot_no) DO NOTHING RETURNING id, created_at").
			ToSql()

		if err != nil {
			return nil, fmt.Errorf("%w: Reserve - build insert query: %v", ErrBuildQuery, err)
		}

		reservation := &domain.SlotReservation{
			CenterID:        centerID,
			AppointmentDate: date,
			TimeSlot:        timeSlot,
			SlotNo:          slotNo,
			BookingRef:      bookingRef,
		}

		var createdAt sql.NullTime
		err = executor.QueryRowContext(ctx, query, args...).Scan(&reservation.ID, &createdAt)
		if err == sql.ErrNoRows {
			// Место занято - пробуем следующее
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: Reserve - execute insert: %v", ErrExecQuery, err)
		}

		reservation.CreatedAt = createdAt.Time
		return reservation, nil
	}

	return nil, ErrSlotTaken
}

// ReleaseByBookingRef освобождает резервацию отменённого бронирования
// Слот снова становится доступным для записи
func (r *Repository) ReleaseByBookingRef(ctx context.Context, bookingRef string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_reservations").
		Where(squirrel.Eq{"booking_ref": bookingRef}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReleaseByBookingRef - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReleaseByBookingRef - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReleaseByBookingRef - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// CountByCenterAndDate возвращает количество занятых мест по каждому слоту
// на указанную дату. Используется для выдачи доступных слотов
func (r *Repository) CountByCenterAndDate(ctx context.Context, centerID int64, date time.Time) (map[types.TimeSlot]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("time_slot", "COUNT(*)").
		From("slot_reservations").
		Where(squirrel.Eq{"center_id": centerID, "appointment_date": date}).
		GroupBy("time_slot").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByCenterAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByCenterAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[types.TimeSlot]int)
	for rows.Next() {
		var slot types.TimeSlot
		var count int
		if err := rows.Scan(&slot, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByCenterAndDate - scan row: %v", ErrScanRow, err)
		}
		counts[slot] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByCenterAndDate - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}
