package slot

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
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// Repository репозиторий временных слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertMissing вставляет слоты пачкой, молча пропуская уже существующие.
// Уникальный индекс (dock_id, slot_date, start_time, end_time) делает
// генерацию идемпотентной: повторный запуск не создаёт дублей и не
// трогает occupancy существующих слотов.
// Возвращает количество реально вставленных строк.
func (r *Repository) InsertMissing(ctx context.Context, slots []*domain.TimeSlot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("time_slots").
		Columns(
			"dock_id",
			"slot_date",
			"start_time",
			"end_time",
			"capacity",
			"occupancy",
			"is_available",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.DockID,
			s.SlotDate,
			s.StartTime,
			s.EndTime,
			s.Capacity,
			0,
			true,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (dock_id, slot_date, start_time, end_time) DO NOTHING").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: InsertMissing - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: InsertMissing - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: InsertMissing - rows affected: %v", ErrExecQuery, err)
	}

	return inserted, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"dock_id",
		"slot_date",
		"start_time",
		"end_time",
		"capacity",
		"occupancy",
		"is_available",
		"created_at",
		"updated_at",
	).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByWindow получает слот дока по дате и окну времени
func (r *Repository) GetByWindow(ctx context.Context, dockID int64, date time.Time, start, end types.TimeString) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"dock_id",
		"slot_date",
		"start_time",
		"end_time",
		"capacity",
		"occupancy",
		"is_available",
		"created_at",
		"updated_at",
	).
		From("time_slots").
		Where(squirrel.Eq{
			"dock_id":    dockID,
			"slot_date":  date,
			"start_time": start,
			"end_time":   end,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByWindow - build select query: %v", ErrBuildQuery, err)
	}

	s, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWindow - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListByFilter получает слоты по фильтру дат и доков.
// Сортировка фиксированная: дата, время начала, док.
func (r *Repository) ListByFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"dock_id",
		"slot_date",
		"start_time",
		"end_time",
		"capacity",
		"occupancy",
		"is_available",
		"created_at",
		"updated_at",
	).
		From("time_slots").
		OrderBy("slot_date ASC", "start_time ASC", "dock_id ASC")

	if len(filter.DockIDs) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"dock_id": filter.DockIDs})
	}
	if filter.DockID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"dock_id": *filter.DockID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_date": *filter.Date})
	}
	if !filter.DateFrom.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_date": filter.DateFrom})
	}
	if !filter.DateTo.IsZero() {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"slot_date": filter.DateTo})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// ListBookable получает доступные для записи слоты указанных доков
// на дату и время начала. Сортировка по ID дока гарантирует
// детерминированный выбор дока при равных условиях.
func (r *Repository) ListBookable(ctx context.Context, dockIDs []int64, date time.Time, start types.TimeString) ([]*domain.TimeSlot, error) {
	if len(dockIDs) == 0 {
		return nil, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"dock_id",
		"slot_date",
		"start_time",
		"end_time",
		"capacity",
		"occupancy",
		"is_available",
		"created_at",
		"updated_at",
	).
		From("time_slots").
		Where(squirrel.Eq{"dock_id": dockIDs}).
		Where(squirrel.Eq{"slot_date": date}).
		Where(squirrel.Eq{"start_time": start}).
		Where(squirrel.Eq{"is_available": true}).
		Where(squirrel.Expr("occupancy < capacity")).
		OrderBy("dock_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBookable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// TryOccupy атомарно занимает одно место в слоте.
// Условие в WHERE защищает от гонки: инкремент проходит только если
// слот всё ещё доступен и в нём осталось место. Возвращает false,
// если место занять не удалось.
func (r *Repository) TryOccupy(ctx context.Context, slotID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("occupancy", squirrel.Expr("occupancy + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Eq{"is_available": true}).
		Where(squirrel.Expr("occupancy < capacity")).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: TryOccupy - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: TryOccupy - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: TryOccupy - rows affected: %v", ErrExecQuery, err)
	}

	return affected == 1, nil
}

// Release освобождает одно место в слоте после отмены бронирования.
// Условие occupancy > 0 не даёт уйти в минус при повторном вызове.
func (r *Repository) Release(ctx context.Context, slotID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("occupancy", squirrel.Expr("occupancy - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Expr("occupancy > 0")).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Release - rows affected: %v", ErrExecQuery, err)
	}

	return affected == 1, nil
}

// SetAvailability включает или выключает слот для записи.
// Текущая занятость при этом не меняется.
func (r *Repository) SetAvailability(ctx context.Context, slotID int64, available bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_available", available).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slotID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete удаляет слот по ID
func (r *Repository) Delete(ctx context.Context, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"id": slotID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteByDockAndRange удаляет слоты дока за период.
// Возвращает количество удалённых слотов.
func (r *Repository) DeleteByDockAndRange(ctx context.Context, dockID int64, from, to time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"dock_id": dockID}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDockAndRange - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDockAndRange - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteByDockAndRange - rows affected: %v", ErrExecQuery, err)
	}

	return affected, nil
}

func (r *Repository) scanSlot(row *sql.Row) (*domain.TimeSlot, error) {
	var s domain.TimeSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.DockID,
		&s.SlotDate,
		&s.StartTime,
		&s.EndTime,
		&s.Capacity,
		&s.Occupancy,
		&s.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.TimeSlot, error) {
	var slots []*domain.TimeSlot

	for rows.Next() {
		var s domain.TimeSlot
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&s.ID,
			&s.DockID,
			&s.SlotDate,
			&s.StartTime,
			&s.EndTime,
			&s.Capacity,
			&s.Occupancy,
			&s.IsAvailable,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan slot: %v", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows iteration: %v", ErrScanRow, err)
	}

	return slots, nil
}
