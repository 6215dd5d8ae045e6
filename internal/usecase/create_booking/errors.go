package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDateInPast возвращается при попытке бронирования на прошедшую дату
	ErrDateInPast = errors.New("create_booking: date is in the past")

	// ErrVehicleTypeNotFound возвращается, когда тип ТС не найден
	ErrVehicleTypeNotFound = errors.New("create_booking: vehicle type not found")

	// ErrSupplierNotFound возвращается, когда поставщик не найден
	ErrSupplierNotFound = errors.New("create_booking: supplier not found")

	// ErrTransportTypeNotFound возвращается, когда тип перевозки не найден
	ErrTransportTypeNotFound = errors.New("create_booking: transport type not found")

	// ErrVehicleTypeNotAllowed возвращается, когда поставщик ограничил
	// допустимые типы ТС и запрошенный тип в список не входит
	ErrVehicleTypeNotAllowed = errors.New("create_booking: vehicle type is not allowed for supplier")

	// ErrNoEligibleDocks возвращается, когда ни один док не подходит
	// под направление, зону и тип перевозки
	ErrNoEligibleDocks = errors.New("create_booking: no eligible docks")

	// ErrSlotNotAvailable возвращается, когда на выбранное время нет
	// слота со свободным местом
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrQuotaExceeded возвращается, когда объём бронирования превышает
	// остаток квоты
	ErrQuotaExceeded = errors.New("create_booking: volume quota exceeded")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
