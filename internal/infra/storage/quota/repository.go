package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/dbmetrics"
	"github.com/avdmitr/YMS-SlotService/pkg/psqlbuilder"
)

// Repository репозиторий квот объёма
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория квот
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindForDate получает квоты объекта и направления, чья календарная
// координата (год, месяц, день недели) покрывает дату. Типы перевозки
// и переопределения на даты загружаются отдельными запросами.
func (r *Repository) FindForDate(ctx context.Context, objectID int64, direction domain.Direction, date time.Time) ([]*domain.VolumeQuota, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"object_id",
		"direction",
		"year",
		"month",
		"day_of_week",
		"volume",
		"allow_overbooking",
	).
		From("volume_quotas").
		Where(squirrel.Eq{"object_id": objectID}).
		Where(squirrel.Eq{"direction": direction}).
		Where(squirrel.Eq{"year": date.Year()}).
		Where(squirrel.Eq{"month": int(date.Month())}).
		Where(squirrel.Eq{"day_of_week": domain.DayOfWeek(date)}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var quotas []*domain.VolumeQuota
	byID := make(map[int64]*domain.VolumeQuota)

	for rows.Next() {
		var q domain.VolumeQuota
		if err := rows.Scan(
			&q.ID,
			&q.ObjectID,
			&q.Direction,
			&q.Year,
			&q.Month,
			&q.DayOfWeek,
			&q.Volume,
			&q.AllowOverbooking,
		); err != nil {
			return nil, fmt.Errorf("%w: FindForDate - scan quota: %v", ErrScanRow, err)
		}
		quotas = append(quotas, &q)
		byID[q.ID] = &q
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FindForDate - rows iteration: %v", ErrScanRow, err)
	}

	if len(quotas) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(quotas))
	for _, q := range quotas {
		ids = append(ids, q.ID)
	}

	if err := r.loadTransportTypes(ctx, executor, ids, byID); err != nil {
		return nil, err
	}
	if err := r.loadOverrides(ctx, executor, ids, byID); err != nil {
		return nil, err
	}

	return quotas, nil
}

func (r *Repository) loadTransportTypes(ctx context.Context, executor DBExecutor, ids []int64, byID map[int64]*domain.VolumeQuota) error {
	query, args, err := psqlbuilder.Select("quota_id", "transport_type_id").
		From("volume_quota_transport_types").
		Where(squirrel.Eq{"quota_id": ids}).
		OrderBy("quota_id ASC", "transport_type_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadTransportTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadTransportTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var quotaID, transportTypeID int64
		if err := rows.Scan(&quotaID, &transportTypeID); err != nil {
			return fmt.Errorf("%w: loadTransportTypes - scan: %v", ErrScanRow, err)
		}
		if q, ok := byID[quotaID]; ok {
			q.TransportTypeIDs = append(q.TransportTypeIDs, transportTypeID)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadTransportTypes - rows iteration: %v", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) loadOverrides(ctx context.Context, executor DBExecutor, ids []int64, byID map[int64]*domain.VolumeQuota) error {
	query, args, err := psqlbuilder.Select("id", "quota_id", "override_date", "volume").
		From("volume_quota_overrides").
		Where(squirrel.Eq{"quota_id": ids}).
		OrderBy("quota_id ASC", "override_date ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ov domain.VolumeQuotaOverride
		if err := rows.Scan(&ov.ID, &ov.QuotaID, &ov.Date, &ov.Volume); err != nil {
			return fmt.Errorf("%w: loadOverrides - scan: %v", ErrScanRow, err)
		}
		if q, ok := byID[ov.QuotaID]; ok {
			q.Overrides = append(q.Overrides, ov)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadOverrides - rows iteration: %v", ErrScanRow, err)
	}

	return nil
}
