package prrlimit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/dbmetrics"
	"github.com/avdmitr/YMS-SlotService/pkg/psqlbuilder"
)

// Repository репозиторий правил длительности ПРР
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил ПРР
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Resolve подбирает наиболее специфичное правило для комбинации
// (поставщик, тип перевозки, тип ТС) на объекте.
//
// Правило подходит, если каждое его измерение либо не задано, либо
// совпадает со значением запроса; измерения, не заданные в запросе,
// должны быть не заданы и в правиле. Из подходящих выбирается правило
// с наибольшим числом заданных измерений, при равенстве приоритет
// отдаётся поставщику, затем типу перевозки, затем типу ТС:
// (s,t,v) > (s,t) > (s,v) > (t,v) > (s) > (t) > (v) > базовое.
func (r *Repository) Resolve(ctx context.Context, lookup domain.PrrLookup) (*domain.PrrLimit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"object_id",
		"supplier_id",
		"transport_type_id",
		"vehicle_type_id",
		"duration_minutes",
	).
		From("prr_limits").
		Where(squirrel.Eq{"object_id": lookup.ObjectID})

	selectBuilder = matchDimension(selectBuilder, "supplier_id", lookup.SupplierID)
	selectBuilder = matchDimension(selectBuilder, "transport_type_id", lookup.TransportTypeID)
	selectBuilder = matchDimension(selectBuilder, "vehicle_type_id", lookup.VehicleTypeID)

	selectBuilder = selectBuilder.
		OrderBy(
			`((supplier_id IS NOT NULL)::int + (transport_type_id IS NOT NULL)::int + (vehicle_type_id IS NOT NULL)::int) DESC`,
			`((supplier_id IS NOT NULL)::int * 4 + (transport_type_id IS NOT NULL)::int * 2 + (vehicle_type_id IS NOT NULL)::int) DESC`,
		).
		Limit(1)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Resolve - build select query: %v", ErrBuildQuery, err)
	}

	var limit domain.PrrLimit
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&limit.ID,
		&limit.ObjectID,
		&limit.SupplierID,
		&limit.TransportTypeID,
		&limit.VehicleTypeID,
		&limit.DurationMinutes,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLimitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Resolve - scan limit: %v", ErrScanRow, err)
	}

	return &limit, nil
}

// matchDimension добавляет условие соответствия одного измерения:
// для заданного значения подходит правило с тем же значением или без
// ограничения, для незаданного только правило без ограничения.
func matchDimension(b squirrel.SelectBuilder, column string, value *int64) squirrel.SelectBuilder {
	if value != nil {
		return b.Where(squirrel.Or{
			squirrel.Eq{column: nil},
			squirrel.Eq{column: *value},
		})
	}
	return b.Where(squirrel.Eq{column: nil})
}
