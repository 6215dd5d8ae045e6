package resolve_duration

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resolve_duration: invalid input data")

	// ErrDurationNotFound возвращается, когда не нашлось ни правила,
	// ни типа ТС для длительности по умолчанию
	ErrDurationNotFound = errors.New("resolve_duration: no duration rule matched")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("resolve_duration: internal error")
)
