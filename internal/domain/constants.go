package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot generation constants
const (
	// SlotStepMinutes ширина генерируемого окна слота.
	// Ширина всегда фиксирована расписанием; длительность ПРР на неё не влияет.
	SlotStepMinutes = 30

	// MaxGenerateRangeDays максимальный период генерации слотов (~3 месяца)
	MaxGenerateRangeDays = 92
)

// PRR duration constraints
const (
	DurationStepMinutes = 30
)

// DayOfWeek returns the canonical day-of-week index with Monday=0 .. Sunday=6.
// Every schedule/slot/quota computation must go through this helper.
func DayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DateOnly truncates a timestamp to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
