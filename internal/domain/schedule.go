package domain

import (
	"errors"

	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// Schedule validation errors
var (
	ErrInvalidDayOfWeek   = errors.New("day_of_week must be between 0 (Monday) and 6 (Sunday)")
	ErrInvalidWorkWindow  = errors.New("work_end must be after work_start")
	ErrIncompleteBreak    = errors.New("break_start and break_end must be set together")
	ErrBreakOutsideWork   = errors.New("break must lie within the work window")
	ErrNegativeCapacity   = errors.New("capacity must not be negative")
	ErrWorkWindowRequired = errors.New("work_start and work_end are required for a working day")
)

// WorkSchedule описывает режим работы дока в конкретный день недели.
// Для нерабочего дня окна и перерыв отсутствуют, слоты не генерируются.
type WorkSchedule struct {
	ID           int64
	DockID       int64
	DayOfWeek    int // Monday=0 .. Sunday=6
	IsWorkingDay bool
	WorkStart    *types.TimeString
	WorkEnd      *types.TimeString
	BreakStart   *types.TimeString
	BreakEnd     *types.TimeString
	Capacity     int
}

// HasBreak reports whether the schedule defines a break window.
func (s WorkSchedule) HasBreak() bool {
	return s.BreakStart != nil && s.BreakEnd != nil
}

// EffectiveCapacity возвращает вместимость слота для этого дня.
// Нерабочий день всегда даёт ноль независимо от настроенного значения.
func (s WorkSchedule) EffectiveCapacity() int {
	if !s.IsWorkingDay {
		return 0
	}
	return s.Capacity
}

// Validate checks schedule field consistency.
func (s WorkSchedule) Validate() error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return ErrInvalidDayOfWeek
	}
	if s.Capacity < 0 {
		return ErrNegativeCapacity
	}
	if !s.IsWorkingDay {
		return nil
	}
	if s.WorkStart == nil || s.WorkEnd == nil {
		return ErrWorkWindowRequired
	}
	if !s.WorkStart.IsBefore(*s.WorkEnd) {
		return ErrInvalidWorkWindow
	}
	if (s.BreakStart == nil) != (s.BreakEnd == nil) {
		return ErrIncompleteBreak
	}
	if s.HasBreak() {
		if !s.BreakStart.IsBefore(*s.BreakEnd) {
			return ErrBreakOutsideWork
		}
		if s.BreakStart.IsBefore(*s.WorkStart) || s.WorkEnd.IsBefore(*s.BreakEnd) {
			return ErrBreakOutsideWork
		}
	}
	return nil
}

// InBreak reports whether a window starting at start would overlap the break.
// Окно [start, start+step) пересекается с перерывом [bs, be), если
// start < be и bs < start+step.
func (s WorkSchedule) InBreak(start types.TimeString, stepMinutes int) bool {
	if !s.HasBreak() {
		return false
	}
	end, err := start.AddMinutes(stepMinutes)
	if err != nil {
		return false
	}
	return start.IsBefore(*s.BreakEnd) && s.BreakStart.IsBefore(end)
}
