package generate_slots

import (
	"context"
	"fmt"
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
	docks map[int64]*domain.Dock
}

func (f *fakeCatalog) GetDock(_ context.Context, id int64) (*domain.Dock, error) {
	if d, ok := f.docks[id]; ok {
		return d, nil
	}
	return nil, catalogRepo.ErrDockNotFound
}

func (f *fakeCatalog) ListDocks(_ context.Context, filter domain.DockFilter) ([]*domain.Dock, error) {
	var docks []*domain.Dock
	for _, d := range f.docks {
		if filter.ObjectID == nil || d.ObjectID == *filter.ObjectID {
			docks = append(docks, d)
		}
	}
	return docks, nil
}

type fakeSchedules struct {
	schedules []*domain.WorkSchedule
}

func (f *fakeSchedules) ListByDocks(_ context.Context, _ []int64) ([]*domain.WorkSchedule, error) {
	return f.schedules, nil
}

// fakeSlots имитирует уникальный индекс: повторная вставка того же
// окна пропускается
type fakeSlots struct {
	existing map[string]bool
	inserted []*domain.TimeSlot
}

func slotKey(s *domain.TimeSlot) string {
	return fmt.Sprintf("%d/%s/%s", s.DockID, s.SlotDate.Format(domain.DateFormat), s.StartTime)
}

func (f *fakeSlots) InsertMissing(_ context.Context, slots []*domain.TimeSlot) (int64, error) {
	if f.existing == nil {
		f.existing = make(map[string]bool)
	}
	var inserted int64
	for _, s := range slots {
		key := slotKey(s)
		if f.existing[key] {
			continue
		}
		f.existing[key] = true
		f.inserted = append(f.inserted, s)
		inserted++
	}
	return inserted, nil
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

func workingDay(t *testing.T, dockID int64, day int, capacity int) *domain.WorkSchedule {
	t.Helper()
	return &domain.WorkSchedule{
		DockID:       dockID,
		DayOfWeek:    day,
		IsWorkingDay: true,
		WorkStart:    ptr.Ptr(mustTime(t, "08:00")),
		WorkEnd:      ptr.Ptr(mustTime(t, "12:00")),
		BreakStart:   ptr.Ptr(mustTime(t, "10:00")),
		BreakEnd:     ptr.Ptr(mustTime(t, "10:30")),
		Capacity:     capacity,
	}
}

func TestExecute(t *testing.T) {
	monday, _ := time.Parse(domain.DateFormat, "2025-06-02")

	t.Run("генерирует окна с пропуском перерыва", func(t *testing.T) {
		slots := &fakeSlots{}
		uc := NewUseCase(
			&fakeCatalog{docks: map[int64]*domain.Dock{1: {ID: 1, ObjectID: 10}}},
			&fakeSchedules{schedules: []*domain.WorkSchedule{workingDay(t, 1, 0, 2)}},
			slots,
			nopLogger{},
		)

		resp, err := uc.Execute(context.Background(), &Request{
			DockIDs:  []int64{1},
			DateFrom: monday,
			DateTo:   monday,
		})
		require.NoError(t, err)

		// 08:00-12:00 это 8 окон по 30 минут, перерыв 10:00-10:30
		// выбивает одно
		assert.Equal(t, int64(7), resp.Created)
		assert.Zero(t, resp.Skipped)

		var starts []string
		for _, s := range slots.inserted {
			starts = append(starts, s.StartTime.String())
			assert.Equal(t, 2, s.Capacity)
		}
		assert.Equal(t, []string{"08:00", "08:30", "09:00", "09:30", "10:30", "11:00", "11:30"}, starts)
	})

	t.Run("повторная генерация идемпотентна", func(t *testing.T) {
		slots := &fakeSlots{}
		uc := NewUseCase(
			&fakeCatalog{docks: map[int64]*domain.Dock{1: {ID: 1, ObjectID: 10}}},
			&fakeSchedules{schedules: []*domain.WorkSchedule{workingDay(t, 1, 0, 2)}},
			slots,
			nopLogger{},
		)

		req := &Request{DockIDs: []int64{1}, DateFrom: monday, DateTo: monday}

		first, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(7), first.Created)

		second, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Zero(t, second.Created)
		assert.Equal(t, int64(7), second.Skipped)
	})

	t.Run("нерабочий день не даёт слотов", func(t *testing.T) {
		sunday, _ := time.Parse(domain.DateFormat, "2025-06-08")

		slots := &fakeSlots{}
		uc := NewUseCase(
			&fakeCatalog{docks: map[int64]*domain.Dock{1: {ID: 1, ObjectID: 10}}},
			&fakeSchedules{schedules: []*domain.WorkSchedule{
				workingDay(t, 1, 0, 2),
				{DockID: 1, DayOfWeek: 6, IsWorkingDay: false},
			}},
			slots,
			nopLogger{},
		)

		resp, err := uc.Execute(context.Background(), &Request{
			DockIDs:  []int64{1},
			DateFrom: sunday,
			DateTo:   sunday,
		})
		require.NoError(t, err)
		assert.Zero(t, resp.Created)
	})

	t.Run("неизвестный док отклоняется", func(t *testing.T) {
		uc := NewUseCase(
			&fakeCatalog{docks: map[int64]*domain.Dock{}},
			&fakeSchedules{},
			&fakeSlots{},
			nopLogger{},
		)

		_, err := uc.Execute(context.Background(), &Request{
			DockIDs:  []int64{99},
			DateFrom: monday,
			DateTo:   monday,
		})
		assert.ErrorIs(t, err, ErrDockNotFound)
	})

	t.Run("слишком длинный период отклоняется", func(t *testing.T) {
		uc := NewUseCase(&fakeCatalog{}, &fakeSchedules{}, &fakeSlots{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			DockIDs:  []int64{1},
			DateFrom: monday,
			DateTo:   monday.AddDate(0, 0, domain.MaxGenerateRangeDays),
		})
		assert.ErrorIs(t, err, ErrRangeTooLong)
	})

	t.Run("перевёрнутый период отклоняется", func(t *testing.T) {
		uc := NewUseCase(&fakeCatalog{}, &fakeSchedules{}, &fakeSlots{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			DockIDs:  []int64{1},
			DateFrom: monday,
			DateTo:   monday.AddDate(0, 0, -1),
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestBuildWindowsEdgeCases(t *testing.T) {
	t.Run("окно не помещается до конца дня", func(t *testing.T) {
		s := &domain.WorkSchedule{
			IsWorkingDay: true,
			WorkStart:    ptr.Ptr(mustTime(t, "08:00")),
			WorkEnd:      ptr.Ptr(mustTime(t, "08:45")),
		}
		windows := buildWindows(s)
		require.Len(t, windows, 1)
		assert.Equal(t, "08:00", windows[0].start.String())
	})

	t.Run("рабочий день до конца суток завершается", func(t *testing.T) {
		s := &domain.WorkSchedule{
			IsWorkingDay: true,
			WorkStart:    ptr.Ptr(mustTime(t, "22:00")),
			WorkEnd:      ptr.Ptr(mustTime(t, "23:30")),
		}
		windows := buildWindows(s)

		require.Len(t, windows, 3)
		assert.Equal(t, "23:00", windows[2].start.String())
		assert.Equal(t, "23:30", windows[2].end.String())
	})

	t.Run("перерыв не кратен шагу", func(t *testing.T) {
		s := &domain.WorkSchedule{
			IsWorkingDay: true,
			WorkStart:    ptr.Ptr(mustTime(t, "08:00")),
			WorkEnd:      ptr.Ptr(mustTime(t, "10:00")),
			BreakStart:   ptr.Ptr(mustTime(t, "08:45")),
			BreakEnd:     ptr.Ptr(mustTime(t, "09:15")),
		}
		windows := buildWindows(s)

		var starts []string
		for _, w := range windows {
			starts = append(starts, w.start.String())
		}
		// окна 08:30 и 09:00 пересекаются с перерывом, генерация
		// продолжается с его конца
		assert.Equal(t, []string{"08:00", "09:15"}, starts)
	})
}
