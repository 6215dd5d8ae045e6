package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("time slot not found")

	// ErrDockNotFound возвращается, когда док не найден
	ErrDockNotFound = errors.New("dock not found")

	// ErrSlotExists возвращается при попытке создать слот поверх
	// существующего окна
	ErrSlotExists = errors.New("time slot already exists")

	// ErrSlotHasBookings возвращается при попытке удалить слот с
	// подтверждёнными бронированиями
	ErrSlotHasBookings = errors.New("slot has confirmed bookings")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
