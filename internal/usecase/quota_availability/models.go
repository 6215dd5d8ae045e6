package quota_availability

import (
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

// Request модель запроса остатка квоты
type Request struct {
	ObjectID        int64
	Direction       domain.Direction
	Date            time.Time
	TransportTypeID int64
}

// Response модель ответа.
// Constrained = false означает, что на дату нет ни одной квоты для
// этого типа перевозки и объём не ограничен. Used считается и для
// неограниченной даты.
type Response struct {
	Constrained bool
	Used        float64
	Quotas      []QuotaAvailability
}

// QuotaAvailability остаток по одной квоте.
// Remaining = nil означает неограниченный объём. Отрицательный остаток
// возможен при разрешённом овербукинге и никогда не обрезается до нуля.
type QuotaAvailability struct {
	QuotaID          int64
	Volume           *float64
	Used             float64
	Remaining        *float64
	AllowOverbooking bool
	TransportTypeIDs []int64
}
