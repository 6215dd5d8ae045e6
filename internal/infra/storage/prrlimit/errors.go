package prrlimit

import "errors"

var (
	// ErrLimitNotFound возвращается, когда подходящее правило не найдено
	ErrLimitNotFound = errors.New("prrlimit.repository: prr limit not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("prrlimit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("prrlimit.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("prrlimit.repository: failed to scan row")
)
