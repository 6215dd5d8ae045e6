package catalog

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

// Repository репозиторий справочных данных: доки, поставщики, типы ТС.
// Справочники ведёт мастер-система, здесь только чтение.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetDock получает док по ID
func (r *Repository) GetDock(ctx context.Context, id int64) (*domain.Dock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"status",
		"dock_type",
		"object_id",
		"length_meters",
		"width_meters",
		"max_load_kg",
	).
		From("docks").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDock - build select query: %v", ErrBuildQuery, err)
	}

	var dock domain.Dock
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&dock.ID,
		&dock.Name,
		&dock.Status,
		&dock.DockType,
		&dock.ObjectID,
		&dock.LengthMeters,
		&dock.WidthMeters,
		&dock.MaxLoadKG,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDock - scan dock: %v", ErrScanRow, err)
	}

	return &dock, nil
}

// ListDocks получает доки по фильтру.
// Зоны и типы перевозки фильтруются по правилу «док без ограничений
// принимает всё»: док, у которого нет привязанных зон (типов),
// проходит фильтр по зоне (типу).
func (r *Repository) ListDocks(ctx context.Context, filter domain.DockFilter) ([]*domain.Dock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"d.id",
		"d.name",
		"d.status",
		"d.dock_type",
		"d.object_id",
		"d.length_meters",
		"d.width_meters",
		"d.max_load_kg",
	).
		From("docks d").
		Where(squirrel.Eq{"d.status": domain.DockActive}).
		OrderBy("d.id ASC")

	if filter.ObjectID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.object_id": *filter.ObjectID})
	}

	if len(filter.DockTypes) > 0 {
		types := make([]string, len(filter.DockTypes))
		for i, t := range filter.DockTypes {
			types[i] = string(t)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"d.dock_type": types})
	}

	if filter.SupplierZoneID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(
			`(NOT EXISTS (SELECT 1 FROM dock_zones dz WHERE dz.dock_id = d.id)
			OR EXISTS (SELECT 1 FROM dock_zones dz WHERE dz.dock_id = d.id AND dz.zone_id = ?))`,
			*filter.SupplierZoneID,
		))
	}

	if filter.TransportTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(
			`(NOT EXISTS (SELECT 1 FROM dock_transport_types dt WHERE dt.dock_id = d.id)
			OR EXISTS (SELECT 1 FROM dock_transport_types dt WHERE dt.dock_id = d.id AND dt.transport_type_id = ?))`,
			*filter.TransportTypeID,
		))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDocks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDocks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var docks []*domain.Dock
	for rows.Next() {
		var dock domain.Dock
		if err := rows.Scan(
			&dock.ID,
			&dock.Name,
			&dock.Status,
			&dock.DockType,
			&dock.ObjectID,
			&dock.LengthMeters,
			&dock.WidthMeters,
			&dock.MaxLoadKG,
		); err != nil {
			return nil, fmt.Errorf("%w: ListDocks - scan dock: %v", ErrScanRow, err)
		}
		docks = append(docks, &dock)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListDocks - rows iteration: %v", ErrScanRow, err)
	}

	return docks, nil
}

// GetSupplier получает поставщика по ID
func (r *Repository) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"zone_id",
		"transport_type_id",
	).
		From("suppliers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSupplier - build select query: %v", ErrBuildQuery, err)
	}

	var supplier domain.Supplier
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&supplier.ID,
		&supplier.Name,
		&supplier.ZoneID,
		&supplier.TransportTypeID,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSupplier - scan supplier: %v", ErrScanRow, err)
	}

	if err := r.loadSupplierVehicleTypes(ctx, executor, &supplier); err != nil {
		return nil, err
	}

	return &supplier, nil
}

// SupplierNames возвращает имена поставщиков по списку ID.
// Неизвестные ID просто отсутствуют в результате.
func (r *Repository) SupplierNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("suppliers").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SupplierNames - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SupplierNames - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("%w: SupplierNames - scan: %v", ErrScanRow, err)
		}
		names[id] = name
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SupplierNames - rows iteration: %v", ErrScanRow, err)
	}

	return names, nil
}

func (r *Repository) loadSupplierVehicleTypes(ctx context.Context, executor DBExecutor, supplier *domain.Supplier) error {
	query, args, err := psqlbuilder.Select("vehicle_type_id").
		From("supplier_vehicle_types").
		Where(squirrel.Eq{"supplier_id": supplier.ID}).
		OrderBy("vehicle_type_id ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadSupplierVehicleTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadSupplierVehicleTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var vehicleTypeID int64
		if err := rows.Scan(&vehicleTypeID); err != nil {
			return fmt.Errorf("%w: loadSupplierVehicleTypes - scan: %v", ErrScanRow, err)
		}
		supplier.VehicleTypeIDs = append(supplier.VehicleTypeIDs, vehicleTypeID)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadSupplierVehicleTypes - rows iteration: %v", ErrScanRow, err)
	}

	return nil
}

// GetVehicleType получает тип ТС по ID
func (r *Repository) GetVehicleType(ctx context.Context, id int64) (*domain.VehicleType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
	).
		From("vehicle_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicleType - build select query: %v", ErrBuildQuery, err)
	}

	var vt domain.VehicleType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vt.ID,
		&vt.Name,
		&vt.DurationMinutes,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVehicleTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVehicleType - scan vehicle type: %v", ErrScanRow, err)
	}

	return &vt, nil
}

// TransportTypeExists проверяет наличие типа перевозки в справочнике
func (r *Repository) TransportTypeExists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("transport_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: TransportTypeExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: TransportTypeExists - scan: %v", ErrScanRow, err)
	}

	return true, nil
}
