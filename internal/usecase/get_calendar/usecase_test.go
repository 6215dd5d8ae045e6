package get_calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	catalogRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/catalog"
	"github.com/avdmitr/YMS-SlotService/pkg/ptr"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

type fakeCatalog struct {
	docks       []*domain.Dock
	docksNoZone []*domain.Dock
	suppliers   map[int64]*domain.Supplier
}

func (f *fakeCatalog) GetDock(_ context.Context, id int64) (*domain.Dock, error) {
	for _, d := range f.docks {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, catalogRepo.ErrDockNotFound
}

func (f *fakeCatalog) ListDocks(_ context.Context, filter domain.DockFilter) ([]*domain.Dock, error) {
	if filter.SupplierZoneID == nil && f.docksNoZone != nil {
		return f.docksNoZone, nil
	}
	return f.docks, nil
}

func (f *fakeCatalog) GetSupplier(_ context.Context, id int64) (*domain.Supplier, error) {
	if s, ok := f.suppliers[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrSupplierNotFound
}

func (f *fakeCatalog) SupplierNames(_ context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	for _, id := range ids {
		if s, ok := f.suppliers[id]; ok {
			names[id] = s.Name
		}
	}
	return names, nil
}

type fakeSlots struct {
	slots []*domain.TimeSlot
}

func (f *fakeSlots) ListByFilter(_ context.Context, _ domain.SlotFilter) ([]*domain.TimeSlot, error) {
	return f.slots, nil
}

type fakeBookings struct {
	bookings []*domain.Booking
}

func (f *fakeBookings) ListActiveBySlots(_ context.Context, _ []int64) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, v string) types.TimeString {
	t.Helper()
	s, err := types.NewTimeStringFromString(v)
	require.NoError(t, err)
	return s
}

func slotAt(t *testing.T, id, dockID int64, date time.Time, start string, capacity, occupancy int) *domain.TimeSlot {
	t.Helper()
	end, err := mustTime(t, start).AddMinutes(domain.SlotStepMinutes)
	require.NoError(t, err)
	return &domain.TimeSlot{
		ID:          id,
		DockID:      dockID,
		SlotDate:    date,
		StartTime:   mustTime(t, start),
		EndTime:     end,
		Capacity:    capacity,
		Occupancy:   occupancy,
		IsAvailable: true,
	}
}

func TestExecuteMerged(t *testing.T) {
	monday, _ := time.Parse(domain.DateFormat, "2025-06-02")
	tuesday := monday.AddDate(0, 0, 1)

	catalog := &fakeCatalog{docks: []*domain.Dock{
		{ID: 1, ObjectID: 10, DockType: domain.DockEntrance},
		{ID: 2, ObjectID: 10, DockType: domain.DockUniversal},
	}}

	t.Run("слоты с одинаковым окном сливаются", func(t *testing.T) {
		slots := &fakeSlots{slots: []*domain.TimeSlot{
			slotAt(t, 1, 1, monday, "08:00", 2, 1),
			slotAt(t, 2, 2, monday, "08:00", 3, 0),
			slotAt(t, 3, 1, monday, "08:30", 2, 2),
			slotAt(t, 4, 2, tuesday, "08:00", 3, 0),
		}}
		uc := NewUseCase(catalog, slots, &fakeBookings{}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			ObjectID: ptr.Ptr(int64(10)),
			DateFrom: monday,
			DateTo:   tuesday,
		})
		require.NoError(t, err)
		require.Len(t, resp.Days, 2)

		day := resp.Days[0]
		require.Len(t, day.Slots, 2)

		merged := day.Slots[0]
		assert.Equal(t, "08:00", merged.StartTime.String())
		assert.Equal(t, 5, merged.Capacity)
		assert.Equal(t, 1, merged.Occupancy)
		assert.Equal(t, domain.SlotPartial, merged.Status)
		assert.Equal(t, []int64{1, 2}, merged.DockIDs)

		full := day.Slots[1]
		assert.Equal(t, domain.SlotFull, full.Status)
		assert.Empty(t, full.DockIDs) // заполненный док не предлагается для бронирования
	})

	t.Run("выключенный слот отображается, но не принимает бронирования", func(t *testing.T) {
		off := slotAt(t, 1, 1, monday, "08:00", 2, 0)
		off.IsAvailable = false

		uc := NewUseCase(catalog, &fakeSlots{slots: []*domain.TimeSlot{off}}, &fakeBookings{}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			ObjectID: ptr.Ptr(int64(10)),
			DateFrom: monday,
			DateTo:   monday,
		})
		require.NoError(t, err)
		require.Len(t, resp.Days, 1)
		require.Len(t, resp.Days[0].Slots, 1)

		cell := resp.Days[0].Slots[0]
		assert.False(t, cell.Available)
		assert.Empty(t, cell.DockIDs)
		assert.Equal(t, 2, cell.Capacity)
	})

	t.Run("выключенный док не предлагается в слитой ячейке", func(t *testing.T) {
		off := slotAt(t, 1, 1, monday, "08:00", 2, 0)
		off.IsAvailable = false
		on := slotAt(t, 2, 2, monday, "08:00", 3, 1)

		uc := NewUseCase(catalog, &fakeSlots{slots: []*domain.TimeSlot{off, on}}, &fakeBookings{}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			ObjectID: ptr.Ptr(int64(10)),
			DateFrom: monday,
			DateTo:   monday,
		})
		require.NoError(t, err)
		require.Len(t, resp.Days, 1)
		require.Len(t, resp.Days[0].Slots, 1)

		cell := resp.Days[0].Slots[0]
		assert.True(t, cell.Available)
		assert.Equal(t, []int64{2}, cell.DockIDs)
		assert.Equal(t, 5, cell.Capacity)
		assert.Equal(t, 1, cell.Occupancy)
	})

	t.Run("неизвестный док отклоняется", func(t *testing.T) {
		uc := NewUseCase(catalog, &fakeSlots{}, &fakeBookings{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			DockID:   ptr.Ptr(int64(99)),
			DateFrom: monday,
			DateTo:   monday,
		})
		assert.ErrorIs(t, err, ErrDockNotFound)
	})

	t.Run("слишком длинный период отклоняется", func(t *testing.T) {
		uc := NewUseCase(catalog, &fakeSlots{}, &fakeBookings{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			ObjectID: ptr.Ptr(int64(10)),
			DateFrom: monday,
			DateTo:   monday.AddDate(0, 0, maxCalendarRangeDays),
		})
		assert.ErrorIs(t, err, ErrRangeTooLong)
	})
}

func TestExecuteDetailed(t *testing.T) {
	monday, _ := time.Parse(domain.DateFormat, "2025-06-02")

	catalog := &fakeCatalog{
		docks:     []*domain.Dock{{ID: 1, ObjectID: 10}},
		suppliers: map[int64]*domain.Supplier{7: {ID: 7, Name: "ООО Ромашка"}},
	}
	slots := &fakeSlots{slots: []*domain.TimeSlot{
		slotAt(t, 1, 1, monday, "08:00", 2, 1),
	}}
	bookings := &fakeBookings{bookings: []*domain.Booking{{
		ID:             77,
		TimeSlotID:     1,
		UserID:         42,
		BookingType:    domain.DirectionIn,
		VehiclePlate:   "А123БВ77",
		DriverFullName: "Иванов Иван",
		SupplierID:     ptr.Ptr(int64(7)),
		Cubes:          ptr.Ptr(12.5),
		TransportSheet: ptr.Ptr("ТЛ-001"),
		Status:         domain.BookingConfirmed,
	}}}

	uc := NewUseCase(catalog, slots, bookings, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		DockID:   ptr.Ptr(int64(1)),
		DateFrom: monday,
		DateTo:   monday,
		Detailed: true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	require.Len(t, resp.Days[0].Slots, 1)

	slot := resp.Days[0].Slots[0]
	require.NotNil(t, slot.SlotID)
	assert.Equal(t, int64(1), *slot.SlotID)
	assert.True(t, slot.Available)
	require.Len(t, slot.Bookings, 1)

	b := slot.Bookings[0]
	assert.Equal(t, int64(77), b.ID)
	assert.Equal(t, "А123БВ77", b.VehiclePlate)
	require.NotNil(t, b.SupplierName)
	assert.Equal(t, "ООО Ромашка", *b.SupplierName)
	require.NotNil(t, b.Cubes)
	assert.Equal(t, 12.5, *b.Cubes)
	require.NotNil(t, b.TransportSheet)
	assert.Equal(t, "ТЛ-001", *b.TransportSheet)
}

func TestSupplierZoneFallback(t *testing.T) {
	monday, _ := time.Parse(domain.DateFormat, "2025-06-02")

	catalog := &fakeCatalog{
		docks:       nil, // по зоне ничего не нашлось
		docksNoZone: []*domain.Dock{{ID: 2, ObjectID: 10, DockType: domain.DockUniversal}},
		suppliers: map[int64]*domain.Supplier{7: {
			ID:              7,
			ZoneID:          ptr.Ptr(int64(3)),
			TransportTypeID: ptr.Ptr(int64(5)),
		}},
	}
	slots := &fakeSlots{slots: []*domain.TimeSlot{
		slotAt(t, 1, 2, monday, "08:00", 2, 0),
	}}

	uc := NewUseCase(catalog, slots, &fakeBookings{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		ObjectID:   ptr.Ptr(int64(10)),
		SupplierID: ptr.Ptr(int64(7)),
		DateFrom:   monday,
		DateTo:     monday,
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, []int64{2}, resp.Days[0].Slots[0].DockIDs)
}
