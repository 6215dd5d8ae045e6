package domain

import "time"

// VolumeQuota ограничивает суммарный объём (в кубах) подтверждённых
// бронирований за день. Квота привязана к объекту, направлению и
// календарной координате (год, месяц, день недели) и действует только
// для перечисленных типов перевозки.
type VolumeQuota struct {
	ID               int64
	ObjectID         int64
	Direction        Direction
	Year             int
	Month            int // 1..12
	DayOfWeek        int      // Monday=0 .. Sunday=6
	Volume           *float64 // nil = объём не ограничен
	AllowOverbooking bool
	TransportTypeIDs []int64
	Overrides        []VolumeQuotaOverride
}

// VolumeQuotaOverride точечная замена объёма квоты на конкретную дату.
type VolumeQuotaOverride struct {
	ID      int64
	QuotaID int64
	Date    time.Time
	Volume  *float64
}

// MatchesDate reports whether the quota's calendar coordinate covers the date.
func (q VolumeQuota) MatchesDate(date time.Time) bool {
	return q.Year == date.Year() &&
		q.Month == int(date.Month()) &&
		q.DayOfWeek == DayOfWeek(date)
}

// AppliesTo reports whether the quota constrains the given transport type.
// Квота без списка типов перевозки не ограничивает никого.
func (q VolumeQuota) AppliesTo(transportTypeID int64) bool {
	for _, id := range q.TransportTypeIDs {
		if id == transportTypeID {
			return true
		}
	}
	return false
}

// VolumeForDate returns the effective volume limit for the date.
// Переопределение на дату имеет приоритет над базовым объёмом.
// nil означает отсутствие ограничения.
func (q VolumeQuota) VolumeForDate(date time.Time) *float64 {
	day := DateOnly(date)
	for _, ov := range q.Overrides {
		if DateOnly(ov.Date).Equal(day) {
			return ov.Volume
		}
	}
	return q.Volume
}
