package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	catalogRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/catalog"
	slotRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/slot"
	"github.com/avdmitr/YMS-SlotService/internal/service/slots/models"
	"github.com/avdmitr/YMS-SlotService/pkg/ptr"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

type fakeSlots struct {
	slots    map[int64]*domain.TimeSlot
	deleted  []int64
	toggled  map[int64]bool
	rangeDel int64
}

func (f *fakeSlots) GetByID(_ context.Context, id int64) (*domain.TimeSlot, error) {
	if s, ok := f.slots[id]; ok {
		return s, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlots) ListByFilter(_ context.Context, _ domain.SlotFilter) ([]*domain.TimeSlot, error) {
	var out []*domain.TimeSlot
	for _, s := range f.slots {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSlots) SetAvailability(_ context.Context, slotID int64, available bool) error {
	if _, ok := f.slots[slotID]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	if f.toggled == nil {
		f.toggled = make(map[int64]bool)
	}
	f.toggled[slotID] = available
	return nil
}

func (f *fakeSlots) Delete(_ context.Context, slotID int64) error {
	if _, ok := f.slots[slotID]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(f.slots, slotID)
	f.deleted = append(f.deleted, slotID)
	return nil
}

func (f *fakeSlots) DeleteByDockAndRange(_ context.Context, _ int64, _, _ time.Time) (int64, error) {
	f.rangeDel = int64(len(f.slots))
	f.slots = map[int64]*domain.TimeSlot{}
	return f.rangeDel, nil
}

func (f *fakeSlots) InsertMissing(_ context.Context, newSlots []*domain.TimeSlot) (int64, error) {
	var created int64
	for _, s := range newSlots {
		if f.findWindow(s.DockID, s.SlotDate, s.StartTime, s.EndTime) != nil {
			continue
		}
		if f.slots == nil {
			f.slots = make(map[int64]*domain.TimeSlot)
		}
		s.ID = int64(len(f.slots) + 1000)
		f.slots[s.ID] = s
		created++
	}
	return created, nil
}

func (f *fakeSlots) GetByWindow(_ context.Context, dockID int64, date time.Time, start, end types.TimeString) (*domain.TimeSlot, error) {
	if s := f.findWindow(dockID, date, start, end); s != nil {
		return s, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlots) findWindow(dockID int64, date time.Time, start, end types.TimeString) *domain.TimeSlot {
	for _, s := range f.slots {
		if s.DockID == dockID && s.SlotDate.Equal(date) && s.StartTime == start && s.EndTime == end {
			return s
		}
	}
	return nil
}

type fakeBookings struct {
	hasConfirmed bool
}

func (f *fakeBookings) HasConfirmedForSlots(_ context.Context, _ []int64) (bool, error) {
	return f.hasConfirmed, nil
}

type fakeCatalog struct {
	docks map[int64]*domain.Dock
}

func (f *fakeCatalog) GetDock(_ context.Context, id int64) (*domain.Dock, error) {
	if d, ok := f.docks[id]; ok {
		return d, nil
	}
	return nil, catalogRepo.ErrDockNotFound
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	admin   = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	carrier = domain.Actor{UserID: 42, Role: domain.RoleCarrier}
)

func newService(slots *fakeSlots, bookings *fakeBookings) *Service {
	catalog := &fakeCatalog{docks: map[int64]*domain.Dock{1: {ID: 1}}}
	return NewService(slots, bookings, catalog, fakeTxManager{}, nopLogger{})
}

func slotFixture(id int64) *domain.TimeSlot {
	date, _ := time.Parse(domain.DateFormat, "2025-06-02")
	return &domain.TimeSlot{ID: id, DockID: 1, SlotDate: date, Capacity: 2}
}

func TestCreate(t *testing.T) {
	date, _ := time.Parse(domain.DateFormat, "2025-06-02")

	createReq := func(actor domain.Actor) *models.CreateSlotRequest {
		return &models.CreateSlotRequest{
			Actor:     actor,
			DockID:    1,
			Date:      date,
			StartTime: "10:00",
			EndTime:   "10:30",
			Capacity:  2,
		}
	}

	t.Run("администратор создает слот вручную", func(t *testing.T) {
		slots := &fakeSlots{}
		svc := newService(slots, &fakeBookings{})

		resp, err := svc.Create(context.Background(), createReq(admin))
		require.NoError(t, err)
		assert.Equal(t, "10:00", resp.StartTime)
		assert.Equal(t, 2, resp.Capacity)
		assert.True(t, resp.IsAvailable)
	})

	t.Run("повторное окно конфликтует", func(t *testing.T) {
		slots := &fakeSlots{}
		svc := newService(slots, &fakeBookings{})

		_, err := svc.Create(context.Background(), createReq(admin))
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), createReq(admin))
		assert.ErrorIs(t, err, ErrSlotExists)
	})

	t.Run("перевозчику запрещено", func(t *testing.T) {
		svc := newService(&fakeSlots{}, &fakeBookings{})

		_, err := svc.Create(context.Background(), createReq(carrier))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("неизвестный док", func(t *testing.T) {
		svc := newService(&fakeSlots{}, &fakeBookings{})

		req := createReq(admin)
		req.DockID = 99
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrDockNotFound)
	})

	t.Run("перевёрнутое окно отклоняется", func(t *testing.T) {
		svc := newService(&fakeSlots{}, &fakeBookings{})

		req := createReq(admin)
		req.StartTime, req.EndTime = req.EndTime, req.StartTime
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSetAvailability(t *testing.T) {
	t.Run("администратор выключает слот", func(t *testing.T) {
		slots := &fakeSlots{slots: map[int64]*domain.TimeSlot{5: slotFixture(5)}}
		svc := newService(slots, &fakeBookings{})

		err := svc.SetAvailability(context.Background(), 5, &models.SetAvailabilityRequest{
			Actor:     admin,
			Available: false,
		})
		require.NoError(t, err)
		assert.False(t, slots.toggled[5])
	})

	t.Run("перевозчику запрещено", func(t *testing.T) {
		svc := newService(&fakeSlots{}, &fakeBookings{})

		err := svc.SetAvailability(context.Background(), 5, &models.SetAvailabilityRequest{
			Actor:     carrier,
			Available: false,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("несуществующий слот", func(t *testing.T) {
		svc := newService(&fakeSlots{slots: map[int64]*domain.TimeSlot{}}, &fakeBookings{})

		err := svc.SetAvailability(context.Background(), 99, &models.SetAvailabilityRequest{
			Actor:     admin,
			Available: true,
		})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("слот без бронирований удаляется", func(t *testing.T) {
		slots := &fakeSlots{slots: map[int64]*domain.TimeSlot{5: slotFixture(5)}}
		svc := newService(slots, &fakeBookings{})

		err := svc.Delete(context.Background(), 5, admin)
		require.NoError(t, err)
		assert.Equal(t, []int64{5}, slots.deleted)
	})

	t.Run("слот с подтверждёнными бронированиями защищён", func(t *testing.T) {
		slots := &fakeSlots{slots: map[int64]*domain.TimeSlot{5: slotFixture(5)}}
		svc := newService(slots, &fakeBookings{hasConfirmed: true})

		err := svc.Delete(context.Background(), 5, admin)
		assert.ErrorIs(t, err, ErrSlotHasBookings)
		assert.Empty(t, slots.deleted)
	})

	t.Run("перевозчику запрещено", func(t *testing.T) {
		svc := newService(&fakeSlots{}, &fakeBookings{})

		err := svc.Delete(context.Background(), 5, carrier)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestDeleteRange(t *testing.T) {
	from, _ := time.Parse(domain.DateFormat, "2025-06-02")
	to := from.AddDate(0, 0, 6)

	t.Run("период без бронирований удаляется целиком", func(t *testing.T) {
		slots := &fakeSlots{slots: map[int64]*domain.TimeSlot{
			5: slotFixture(5),
			6: slotFixture(6),
		}}
		svc := newService(slots, &fakeBookings{})

		resp, err := svc.DeleteRange(context.Background(), &models.DeleteRangeRequest{
			Actor:    admin,
			DockID:   1,
			DateFrom: from,
			DateTo:   to,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), resp.Deleted)
	})

	t.Run("бронирование в периоде блокирует удаление", func(t *testing.T) {
		slots := &fakeSlots{slots: map[int64]*domain.TimeSlot{5: slotFixture(5)}}
		svc := newService(slots, &fakeBookings{hasConfirmed: true})

		_, err := svc.DeleteRange(context.Background(), &models.DeleteRangeRequest{
			Actor:    admin,
			DockID:   1,
			DateFrom: from,
			DateTo:   to,
		})
		assert.ErrorIs(t, err, ErrSlotHasBookings)
		assert.Len(t, slots.slots, 1)
	})

	t.Run("неизвестный док", func(t *testing.T) {
		svc := newService(&fakeSlots{}, &fakeBookings{})

		_, err := svc.DeleteRange(context.Background(), &models.DeleteRangeRequest{
			Actor:    admin,
			DockID:   99,
			DateFrom: from,
			DateTo:   to,
		})
		assert.ErrorIs(t, err, ErrDockNotFound)
	})
}

func TestJournal(t *testing.T) {
	t.Run("журнал только для администратора", func(t *testing.T) {
		svc := newService(&fakeSlots{}, &fakeBookings{})

		_, err := svc.Journal(context.Background(), &models.JournalRequest{Actor: carrier, DockID: ptr.Ptr(int64(1))})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("фильтр обязателен", func(t *testing.T) {
		svc := newService(&fakeSlots{}, &fakeBookings{})

		_, err := svc.Journal(context.Background(), &models.JournalRequest{Actor: admin})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("выключенные слоты видны в журнале", func(t *testing.T) {
		off := slotFixture(5)
		off.IsAvailable = false
		slots := &fakeSlots{slots: map[int64]*domain.TimeSlot{5: off}}
		svc := newService(slots, &fakeBookings{})

		resp, err := svc.Journal(context.Background(), &models.JournalRequest{
			Actor:  admin,
			DockID: ptr.Ptr(int64(1)),
		})
		require.NoError(t, err)
		require.Equal(t, 1, resp.Total)
		assert.False(t, resp.Slots[0].IsAvailable)
	})
}
