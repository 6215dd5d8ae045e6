package create_booking

import (
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64            // ID пользователя
	ObjectID        int64            // ID объекта (склада)
	BookingType     domain.Direction // Направление: in или out
	Date            time.Time        // Дата слота (без времени)
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	VehicleTypeID   int64            // ID типа ТС
	VehiclePlate    string           // Госномер ТС
	DriverFullName  string           // ФИО водителя
	DriverPhone     string           // Телефон водителя
	SupplierID      *int64           // ID поставщика (опционально)
	TransportTypeID *int64           // ID типа перевозки (опционально)
	Cubes           *float64         // Объём груза в кубах (опционально)
	TransportSheet  *string          // Номер транспортного листа (опционально)
	PreferredDockID *int64           // Желаемый док, подсказка (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	TimeSlotID  int64
	UserID      int64
	DockID      int64 // Док выбирает сервер, подсказка клиента не обязательна к исполнению
	ObjectID    int64
	SlotDate    time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	BookingType domain.Direction
	Status      domain.BookingStatus

	// Денормализованные данные
	VehicleTypeID   int64
	VehiclePlate    string
	DriverFullName  string
	DriverPhone     string
	SupplierID      *int64
	TransportTypeID *int64
	Cubes           *float64
	TransportSheet  *string

	// Справочная длительность ПРР, на занятое окно не влияет
	DurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}
