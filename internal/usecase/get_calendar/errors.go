package get_calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_calendar: invalid input data")

	// ErrInvalidDateRange возвращается, когда дата окончания раньше даты начала
	ErrInvalidDateRange = errors.New("get_calendar: date_to must not be before date_from")

	// ErrRangeTooLong возвращается, когда запрошенный период превышает лимит
	ErrRangeTooLong = errors.New("get_calendar: date range is too long")

	// ErrDockNotFound возвращается, когда указанный док не найден
	ErrDockNotFound = errors.New("get_calendar: dock not found")

	// ErrSupplierNotFound возвращается, когда поставщик не найден
	ErrSupplierNotFound = errors.New("get_calendar: supplier not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_calendar: internal error")
)
