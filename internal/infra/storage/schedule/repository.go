package schedule

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/dbmetrics"
	"github.com/avdmitr/YMS-SlotService/pkg/psqlbuilder"
)

// Repository репозиторий недельных расписаний доков
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByDocks получает расписания перечисленных доков на все дни недели.
// Результат отсортирован по доку и дню недели.
func (r *Repository) ListByDocks(ctx context.Context, dockIDs []int64) ([]*domain.WorkSchedule, error) {
	if len(dockIDs) == 0 {
		return nil, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"dock_id",
		"day_of_week",
		"is_working_day",
		"work_start",
		"work_end",
		"break_start",
		"break_end",
		"capacity",
	).
		From("work_schedules").
		Where(squirrel.Eq{"dock_id": dockIDs}).
		OrderBy("dock_id ASC", "day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByDocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var schedules []*domain.WorkSchedule
	for rows.Next() {
		var s domain.WorkSchedule
		if err := rows.Scan(
			&s.ID,
			&s.DockID,
			&s.DayOfWeek,
			&s.IsWorkingDay,
			&s.WorkStart,
			&s.WorkEnd,
			&s.BreakStart,
			&s.BreakEnd,
			&s.Capacity,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByDocks - scan schedule: %v", ErrScanRow, err)
		}
		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDocks - rows iteration: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// ListByDock получает расписание одного дока
func (r *Repository) ListByDock(ctx context.Context, dockID int64) ([]*domain.WorkSchedule, error) {
	return r.ListByDocks(ctx, []int64{dockID})
}
