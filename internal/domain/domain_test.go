package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/YMS-SlotService/pkg/ptr"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

func ts(t *testing.T, v string) types.TimeString {
	t.Helper()
	s, err := types.NewTimeStringFromString(v)
	require.NoError(t, err)
	return s
}

func TestDayOfWeek(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2025-06-02", 0}, // Monday
		{"2025-06-04", 2}, // Wednesday
		{"2025-06-07", 5}, // Saturday
		{"2025-06-08", 6}, // Sunday
	}

	for _, tt := range tests {
		d, err := time.Parse(DateFormat, tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, DayOfWeek(d), "date %s", tt.date)
	}
}

func TestSlotStatusFor(t *testing.T) {
	tests := []struct {
		name      string
		occupancy int
		capacity  int
		want      SlotStatus
	}{
		{"empty slot is free", 0, 3, SlotFree},
		{"partially occupied", 1, 3, SlotPartial},
		{"at capacity", 3, 3, SlotFull},
		{"over capacity", 4, 3, SlotFull},
		{"zero capacity is always full", 0, 0, SlotFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SlotStatusFor(tt.occupancy, tt.capacity))
		})
	}
}

func TestTimeSlotBookable(t *testing.T) {
	slot := TimeSlot{Capacity: 2, Occupancy: 1, IsAvailable: true}
	assert.True(t, slot.Bookable())

	slot.Occupancy = 2
	assert.False(t, slot.Bookable())

	slot.Occupancy = 1
	slot.IsAvailable = false
	assert.False(t, slot.Bookable())
}

func TestDockTypeEligibleFor(t *testing.T) {
	assert.True(t, DockEntrance.EligibleFor(DirectionIn))
	assert.False(t, DockEntrance.EligibleFor(DirectionOut))
	assert.False(t, DockExit.EligibleFor(DirectionIn))
	assert.True(t, DockExit.EligibleFor(DirectionOut))
	assert.True(t, DockUniversal.EligibleFor(DirectionIn))
	assert.True(t, DockUniversal.EligibleFor(DirectionOut))
}

func TestWorkScheduleValidate(t *testing.T) {
	valid := WorkSchedule{
		DayOfWeek:    0,
		IsWorkingDay: true,
		WorkStart:    ptr.Ptr(ts(t, "08:00")),
		WorkEnd:      ptr.Ptr(ts(t, "18:00")),
		BreakStart:   ptr.Ptr(ts(t, "12:00")),
		BreakEnd:     ptr.Ptr(ts(t, "13:00")),
		Capacity:     2,
	}
	assert.NoError(t, valid.Validate())

	nonWorking := WorkSchedule{DayOfWeek: 6, IsWorkingDay: false}
	assert.NoError(t, nonWorking.Validate())
	assert.Equal(t, 0, nonWorking.EffectiveCapacity())

	tests := []struct {
		name    string
		mutate  func(s *WorkSchedule)
		wantErr error
	}{
		{"bad day of week", func(s *WorkSchedule) { s.DayOfWeek = 7 }, ErrInvalidDayOfWeek},
		{"negative capacity", func(s *WorkSchedule) { s.Capacity = -1 }, ErrNegativeCapacity},
		{"missing work window", func(s *WorkSchedule) { s.WorkStart = nil }, ErrWorkWindowRequired},
		{"inverted work window", func(s *WorkSchedule) { s.WorkEnd = ptr.Ptr(ts(t, "07:00")) }, ErrInvalidWorkWindow},
		{"break start only", func(s *WorkSchedule) { s.BreakEnd = nil }, ErrIncompleteBreak},
		{"break before work start", func(s *WorkSchedule) { s.BreakStart = ptr.Ptr(ts(t, "07:00")) }, ErrBreakOutsideWork},
		{"break after work end", func(s *WorkSchedule) { s.BreakEnd = ptr.Ptr(ts(t, "19:00")) }, ErrBreakOutsideWork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tt.wantErr)
		})
	}
}

func TestWorkScheduleInBreak(t *testing.T) {
	s := WorkSchedule{
		IsWorkingDay: true,
		WorkStart:    ptr.Ptr(ts(t, "08:00")),
		WorkEnd:      ptr.Ptr(ts(t, "18:00")),
		BreakStart:   ptr.Ptr(ts(t, "12:00")),
		BreakEnd:     ptr.Ptr(ts(t, "13:00")),
	}

	assert.False(t, s.InBreak(ts(t, "11:00"), 30))
	assert.False(t, s.InBreak(ts(t, "11:30"), 30))
	assert.True(t, s.InBreak(ts(t, "12:00"), 30))
	assert.True(t, s.InBreak(ts(t, "12:30"), 30))
	assert.False(t, s.InBreak(ts(t, "13:00"), 30))

	// окно шире перерыва тоже пересекается
	assert.True(t, s.InBreak(ts(t, "11:45"), 30))

	noBreak := WorkSchedule{IsWorkingDay: true}
	assert.False(t, noBreak.InBreak(ts(t, "12:00"), 30))
}

func TestVolumeQuotaMatchesDate(t *testing.T) {
	q := VolumeQuota{Year: 2025, Month: 6, DayOfWeek: 0}

	monday, _ := time.Parse(DateFormat, "2025-06-02")
	tuesday, _ := time.Parse(DateFormat, "2025-06-03")
	julyMonday, _ := time.Parse(DateFormat, "2025-07-07")

	assert.True(t, q.MatchesDate(monday))
	assert.False(t, q.MatchesDate(tuesday))
	assert.False(t, q.MatchesDate(julyMonday))
}

func TestVolumeQuotaVolumeForDate(t *testing.T) {
	day, _ := time.Parse(DateFormat, "2025-06-02")
	other, _ := time.Parse(DateFormat, "2025-06-09")

	q := VolumeQuota{
		Volume: ptr.Ptr(100.0),
		Overrides: []VolumeQuotaOverride{
			{Date: day, Volume: ptr.Ptr(40.0)},
		},
	}

	require.NotNil(t, q.VolumeForDate(day))
	assert.Equal(t, 40.0, *q.VolumeForDate(day))
	require.NotNil(t, q.VolumeForDate(other))
	assert.Equal(t, 100.0, *q.VolumeForDate(other))

	// переопределение может снять ограничение
	q.Overrides[0].Volume = nil
	assert.Nil(t, q.VolumeForDate(day))

	unbounded := VolumeQuota{}
	assert.Nil(t, unbounded.VolumeForDate(day))
}

func TestVolumeQuotaAppliesTo(t *testing.T) {
	q := VolumeQuota{TransportTypeIDs: []int64{1, 3}}
	assert.True(t, q.AppliesTo(1))
	assert.False(t, q.AppliesTo(2))

	empty := VolumeQuota{}
	assert.False(t, empty.AppliesTo(1))
}

func TestPrrLimitSpecificity(t *testing.T) {
	full := PrrLimit{SupplierID: ptr.Ptr(int64(1)), TransportTypeID: ptr.Ptr(int64(2)), VehicleTypeID: ptr.Ptr(int64(3))}
	assert.Equal(t, 3, full.Specificity())

	objectOnly := PrrLimit{}
	assert.Equal(t, 0, objectOnly.Specificity())
}

func TestBookingAccess(t *testing.T) {
	b := Booking{UserID: 42, Status: BookingConfirmed}
	owner := Actor{UserID: 42, Role: RoleCarrier}
	stranger := Actor{UserID: 7, Role: RoleCarrier}
	admin := Actor{UserID: 1, Role: RoleAdmin}

	assert.True(t, b.CanBeViewedBy(owner))
	assert.False(t, b.CanBeViewedBy(stranger))
	assert.True(t, b.CanBeViewedBy(admin))

	assert.True(t, b.CanBeCancelledBy(owner))
	assert.False(t, b.CanBeCancelledBy(stranger))
	assert.True(t, b.CanBeCancelledBy(admin))

	assert.True(t, b.IsActive())
	b.Status = BookingCancelled
	assert.False(t, b.IsActive())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("in")
	assert.NoError(t, err)
	assert.Equal(t, DirectionIn, d)

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}
