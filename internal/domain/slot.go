package domain

import (
	"time"

	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// SlotStatus derived state of a time slot.
type SlotStatus string

const (
	SlotFree    SlotStatus = "free"    // occupancy == 0
	SlotPartial SlotStatus = "partial" // 0 < occupancy < capacity
	SlotFull    SlotStatus = "full"    // occupancy >= capacity
)

// SlotStatusFor derives the status from occupancy and capacity.
// Слот с нулевой вместимостью всегда full.
func SlotStatusFor(occupancy, capacity int) SlotStatus {
	switch {
	case occupancy >= capacity:
		return SlotFull
	case occupancy == 0:
		return SlotFree
	default:
		return SlotPartial
	}
}

// TimeSlot represents one bookable window of a dock on a given date.
type TimeSlot struct {
	ID          int64
	DockID      int64
	SlotDate    time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Capacity    int
	Occupancy   int
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status returns the derived occupancy status.
func (s TimeSlot) Status() SlotStatus {
	return SlotStatusFor(s.Occupancy, s.Capacity)
}

// Bookable reports whether the slot can accept one more booking.
func (s TimeSlot) Bookable() bool {
	return s.IsAvailable && s.Occupancy < s.Capacity
}

// SlotFilter фильтр выборки слотов для календаря и журнала.
type SlotFilter struct {
	DockIDs  []int64
	DateFrom time.Time
	DateTo   time.Time
	DockID   *int64
	Date     *time.Time
}

// SlotDay агрегат по одной дате для недельного представления:
// слоты всех подходящих доков с одинаковым временным окном сливаются
// в одну ячейку с суммарными capacity/occupancy.
type SlotDay struct {
	Date  time.Time
	Slots []MergedSlot
}

// MergedSlot одна ячейка недельного календаря.
type MergedSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
	Occupancy int
	DockIDs   []int64
}

// Status returns the derived status of the merged cell.
func (m MergedSlot) Status() SlotStatus {
	return SlotStatusFor(m.Occupancy, m.Capacity)
}
