package slot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestTryOccupy(t *testing.T) {
	t.Run("занимает место при наличии свободного", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectExec(`UPDATE time_slots SET occupancy = occupancy \+ 1`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.TryOccupy(context.Background(), 10)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("возвращает false, когда слот заполнен", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectExec(`UPDATE time_slots SET occupancy = occupancy \+ 1`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.TryOccupy(context.Background(), 10)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRelease(t *testing.T) {
	t.Run("освобождает место", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectExec(`UPDATE time_slots SET occupancy = occupancy - 1`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.Release(context.Background(), 10)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("не уходит в минус на пустом слоте", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectExec(`UPDATE time_slots SET occupancy = occupancy - 1`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.Release(context.Background(), 10)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestInsertMissing(t *testing.T) {
	repo, mock := newMock(t)

	date, _ := time.Parse(domain.DateFormat, "2025-06-02")
	start, _ := types.NewTimeStringFromString("08:00")
	end, _ := types.NewTimeStringFromString("08:30")

	slots := []*domain.TimeSlot{
		{DockID: 1, SlotDate: date, StartTime: start, EndTime: end, Capacity: 2},
		{DockID: 2, SlotDate: date, StartTime: start, EndTime: end, Capacity: 3},
	}

	// второй слот уже существует, вставляется только первый
	mock.ExpectExec(`INSERT INTO time_slots .+ ON CONFLICT \(dock_id, slot_date, start_time, end_time\) DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	inserted, err := repo.InsertMissing(context.Background(), slots)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertMissingEmpty(t *testing.T) {
	repo, _ := newMock(t)

	inserted, err := repo.InsertMissing(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}

func TestSetAvailabilityNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE time_slots SET is_available`).
		WithArgs(false, int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetAvailability(context.Background(), 99, false)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestListBookableOrdersByDock(t *testing.T) {
	repo, mock := newMock(t)

	date, _ := time.Parse(domain.DateFormat, "2025-06-02")
	start, _ := types.NewTimeStringFromString("08:00")

	rows := sqlmock.NewRows([]string{
		"id", "dock_id", "slot_date", "start_time", "end_time",
		"capacity", "occupancy", "is_available", "created_at", "updated_at",
	}).
		AddRow(int64(5), int64(1), date, "08:00:00", "08:30:00", 2, 0, true, time.Now(), time.Now()).
		AddRow(int64(8), int64(3), date, "08:00:00", "08:30:00", 2, 1, true, time.Now(), time.Now())

	mock.ExpectQuery(`SELECT .+ FROM time_slots .+ ORDER BY dock_id ASC`).
		WillReturnRows(rows)

	slots, err := repo.ListBookable(context.Background(), []int64{1, 3}, date, start)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, int64(1), slots[0].DockID)
	assert.Equal(t, "08:00", slots[0].StartTime.String())
	assert.Equal(t, domain.SlotFree, slots[0].Status())
	assert.Equal(t, domain.SlotPartial, slots[1].Status())
}
