package catalog

import "errors"

var (
	// ErrDockNotFound возвращается, когда док не найден
	ErrDockNotFound = errors.New("catalog.repository: dock not found")

	// ErrSupplierNotFound возвращается, когда поставщик не найден
	ErrSupplierNotFound = errors.New("catalog.repository: supplier not found")

	// ErrVehicleTypeNotFound возвращается, когда тип ТС не найден
	ErrVehicleTypeNotFound = errors.New("catalog.repository: vehicle type not found")

	// ErrTransportTypeNotFound возвращается, когда тип перевозки не найден
	ErrTransportTypeNotFound = errors.New("catalog.repository: transport type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
