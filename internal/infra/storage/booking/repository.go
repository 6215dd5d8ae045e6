package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/dbmetrics"
	"github.com/avdmitr/YMS-SlotService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// При создании бронирования вызов обязан идти внутри транзакции вместе
// с занятием места в слоте, иначе возможна гонка по вместимости.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"time_slot_id",
			"user_id",
			"dock_id",
			"object_id",
			"slot_date",
			"start_time",
			"end_time",
			"booking_type",
			"vehicle_type_id",
			"vehicle_plate",
			"driver_full_name",
			"driver_phone",
			"supplier_id",
			"transport_type_id",
			"cubes",
			"transport_sheet",
			"status",
		).
		Values(
			b.TimeSlotID,
			b.UserID,
			b.DockID,
			b.ObjectID,
			b.SlotDate,
			b.StartTime,
			b.EndTime,
			b.BookingType,
			b.VehicleTypeID,
			b.VehiclePlate,
			b.DriverFullName,
			b.DriverPhone,
			b.SupplierID,
			b.TransportTypeID,
			b.Cubes,
			b.TransportSheet,
			b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(scanTargets(&b, &createdAt, &updatedAt)...)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("slot_date DESC", "start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListWithFilter получает бронирования по админскому фильтру
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings()

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.ObjectID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"object_id": *filter.ObjectID})
	}
	if filter.DockID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"dock_id": *filter.DockID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.DateFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": *filter.DateTo})
	}

	// Для конкретной даты сортируем по времени начала, для периода
	// сначала новые
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.Equal(*filter.DateTo) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC", "dock_id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("slot_date DESC", "start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListActiveBySlots получает подтверждённые бронирования по слотам.
// Используется в детальном представлении календаря.
func (r *Repository) ListActiveBySlots(ctx context.Context, slotIDs []int64) ([]*domain.Booking, error) {
	if len(slotIDs) == 0 {
		return nil, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"time_slot_id": slotIDs}).
		Where(squirrel.Eq{"status": domain.BookingConfirmed}).
		OrderBy("time_slot_id ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Cancel отменяет подтверждённое бронирование.
// Условие status = 'confirmed' в WHERE защищает от двойной отмены:
// повторный вызов вернёт false, место в слоте не будет освобождено
// дважды.
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.BookingCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.BookingConfirmed}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Cancel - rows affected: %v", ErrExecQuery, err)
	}

	return affected == 1, nil
}

// HasConfirmedForSlots проверяет, есть ли хотя бы одно подтверждённое
// бронирование в перечисленных слотах. Используется как защита при
// удалении слотов.
func (r *Repository) HasConfirmedForSlots(ctx context.Context, slotIDs []int64) (bool, error) {
	if len(slotIDs) == 0 {
		return false, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"time_slot_id": slotIDs}).
		Where(squirrel.Eq{"status": domain.BookingConfirmed}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasConfirmedForSlots - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasConfirmedForSlots - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// UsedVolume считает суммарный объём (в кубах) подтверждённых
// бронирований за дату по объекту, направлению и типу перевозки.
// Бронирования без указанного объёма не учитываются.
func (r *Repository) UsedVolume(ctx context.Context, objectID int64, direction domain.Direction, date time.Time, transportTypeID int64) (float64, error) {
	if transportTypeID <= 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(cubes), 0)").
		From("bookings").
		Where(squirrel.Eq{"object_id": objectID}).
		Where(squirrel.Eq{"booking_type": direction}).
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.Eq{"status": domain.BookingConfirmed}).
		Where(squirrel.Eq{"transport_type_id": transportTypeID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: UsedVolume - build select query: %v", ErrBuildQuery, err)
	}

	var used float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&used); err != nil {
		return 0, fmt.Errorf("%w: UsedVolume - scan: %v", ErrScanRow, err)
	}

	return used, nil
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"time_slot_id",
		"user_id",
		"dock_id",
		"object_id",
		"slot_date",
		"start_time",
		"end_time",
		"booking_type",
		"vehicle_type_id",
		"vehicle_plate",
		"driver_full_name",
		"driver_phone",
		"supplier_id",
		"transport_type_id",
		"cubes",
		"transport_sheet",
		"status",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("bookings")
}

func scanTargets(b *domain.Booking, createdAt, updatedAt *sql.NullTime) []any {
	return []any{
		&b.ID,
		&b.TimeSlotID,
		&b.UserID,
		&b.DockID,
		&b.ObjectID,
		&b.SlotDate,
		&b.StartTime,
		&b.EndTime,
		&b.BookingType,
		&b.VehicleTypeID,
		&b.VehiclePlate,
		&b.DriverFullName,
		&b.DriverPhone,
		&b.SupplierID,
		&b.TransportTypeID,
		&b.Cubes,
		&b.TransportSheet,
		&b.Status,
		&b.CancelReason,
		&b.CancelledAt,
		createdAt,
		updatedAt,
	}
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking

	for rows.Next() {
		var b domain.Booking
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(scanTargets(&b, &createdAt, &updatedAt)...); err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}

		b.CreatedAt = createdAt.Time
		b.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows iteration: %v", ErrScanRow, err)
	}

	return bookings, nil
}
