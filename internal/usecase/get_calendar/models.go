package get_calendar

import (
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// Request модель запроса календаря доступности
type Request struct {
	ObjectID        *int64            // ID объекта (опционально)
	DockID          *int64            // ID конкретного дока (опционально)
	Direction       *domain.Direction // Направление: фильтрует доки по типу (опционально)
	SupplierID      *int64            // ID поставщика: фильтр доков по зоне (опционально)
	TransportTypeID *int64            // ID типа перевозки (опционально)
	DateFrom        time.Time         // Начало периода (включительно)
	DateTo          time.Time         // Конец периода (включительно)
	Detailed        bool              // Детальное представление с бронированиями
}

// Response модель ответа календаря
type Response struct {
	Days []DayView
}

// DayView слоты одной даты
type DayView struct {
	Date  time.Time
	Slots []SlotView
}

// SlotView одна ячейка календаря. В недельном представлении слоты
// разных доков с одинаковым окном слиты в одну ячейку, в детальном
// представлении каждая ячейка соответствует одному слоту.
// Available = false означает выключенную ячейку: она отображается,
// но бронирование не принимает.
type SlotView struct {
	SlotID    *int64 // только в детальном представлении
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
	Occupancy int
	Status    domain.SlotStatus
	Available bool
	DockIDs   []int64
	Bookings  []BookingView // только в детальном представлении
}

// BookingView краткие данные бронирования в детальном представлении:
// подсказка оператора показывает груз, транспортный лист и поставщика
type BookingView struct {
	ID             int64
	UserID         int64
	BookingType    domain.Direction
	VehiclePlate   string
	DriverFullName string
	SupplierName   *string
	Cubes          *float64
	TransportSheet *string
	Status         domain.BookingStatus
}
