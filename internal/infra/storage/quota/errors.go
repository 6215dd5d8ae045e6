package quota

import "errors"

var (
	// ErrQuotaNotFound возвращается, когда квота не найдена
	ErrQuotaNotFound = errors.New("quota.repository: volume quota not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("quota.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("quota.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("quota.repository: failed to scan row")
)
