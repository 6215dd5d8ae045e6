package generate_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInvalidDateRange возвращается, когда дата окончания раньше даты начала
	ErrInvalidDateRange = errors.New("generate_slots: date_to must not be before date_from")

	// ErrRangeTooLong возвращается, когда период генерации превышает лимит
	ErrRangeTooLong = errors.New("generate_slots: date range is too long")

	// ErrDockNotFound возвращается, когда указанный док не найден
	ErrDockNotFound = errors.New("generate_slots: dock not found")

	// ErrNoDocks возвращается, когда под фильтр не попал ни один док
	ErrNoDocks = errors.New("generate_slots: no docks matched the request")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
