package quota_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/ptr"
)

type fakeQuotas struct {
	quotas []*domain.VolumeQuota
}

func (f *fakeQuotas) FindForDate(_ context.Context, _ int64, _ domain.Direction, _ time.Time) ([]*domain.VolumeQuota, error) {
	return f.quotas, nil
}

type fakeBookings struct {
	used       float64
	lastTypeID int64
}

func (f *fakeBookings) UsedVolume(_ context.Context, _ int64, _ domain.Direction, _ time.Time, transportTypeID int64) (float64, error) {
	f.lastTypeID = transportTypeID
	return f.used, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute(t *testing.T) {
	date, _ := time.Parse(domain.DateFormat, "2025-06-02")

	baseRequest := &Request{
		ObjectID:        10,
		Direction:       domain.DirectionIn,
		Date:            date,
		TransportTypeID: 5,
	}

	t.Run("считает остаток по квоте", func(t *testing.T) {
		quotas := &fakeQuotas{quotas: []*domain.VolumeQuota{{
			ID:               1,
			Volume:           ptr.Ptr(100.0),
			TransportTypeIDs: []int64{5, 6},
		}}}
		bookings := &fakeBookings{used: 30}
		uc := NewUseCase(quotas, bookings, nopLogger{})

		resp, err := uc.Execute(context.Background(), baseRequest)
		require.NoError(t, err)
		assert.True(t, resp.Constrained)
		require.Len(t, resp.Quotas, 1)

		q := resp.Quotas[0]
		assert.Equal(t, 30.0, q.Used)
		require.NotNil(t, q.Remaining)
		assert.Equal(t, 70.0, *q.Remaining)
		// объём считается только по запрошенному типу перевозки,
		// остальные типы квоты в сумму не входят
		assert.Equal(t, int64(5), bookings.lastTypeID)
	})

	t.Run("отрицательный остаток не обрезается", func(t *testing.T) {
		quotas := &fakeQuotas{quotas: []*domain.VolumeQuota{{
			ID:               1,
			Volume:           ptr.Ptr(100.0),
			AllowOverbooking: true,
			TransportTypeIDs: []int64{5},
		}}}
		uc := NewUseCase(quotas, &fakeBookings{used: 130}, nopLogger{})

		resp, err := uc.Execute(context.Background(), baseRequest)
		require.NoError(t, err)
		require.Len(t, resp.Quotas, 1)
		require.NotNil(t, resp.Quotas[0].Remaining)
		assert.Equal(t, -30.0, *resp.Quotas[0].Remaining)
		assert.True(t, resp.Quotas[0].AllowOverbooking)
	})

	t.Run("переопределение на дату имеет приоритет", func(t *testing.T) {
		quotas := &fakeQuotas{quotas: []*domain.VolumeQuota{{
			ID:               1,
			Volume:           ptr.Ptr(100.0),
			TransportTypeIDs: []int64{5},
			Overrides: []domain.VolumeQuotaOverride{
				{Date: date, Volume: ptr.Ptr(40.0)},
			},
		}}}
		uc := NewUseCase(quotas, &fakeBookings{used: 10}, nopLogger{})

		resp, err := uc.Execute(context.Background(), baseRequest)
		require.NoError(t, err)
		require.Len(t, resp.Quotas, 1)
		require.NotNil(t, resp.Quotas[0].Remaining)
		assert.Equal(t, 30.0, *resp.Quotas[0].Remaining)
	})

	t.Run("квота без объёма не ограничивает", func(t *testing.T) {
		quotas := &fakeQuotas{quotas: []*domain.VolumeQuota{{
			ID:               1,
			TransportTypeIDs: []int64{5},
		}}}
		uc := NewUseCase(quotas, &fakeBookings{used: 500}, nopLogger{})

		resp, err := uc.Execute(context.Background(), baseRequest)
		require.NoError(t, err)
		require.Len(t, resp.Quotas, 1)
		assert.Nil(t, resp.Quotas[0].Volume)
		assert.Nil(t, resp.Quotas[0].Remaining)
		assert.Equal(t, 500.0, resp.Quotas[0].Used)
	})

	t.Run("чужой тип перевозки не попадает в ответ", func(t *testing.T) {
		quotas := &fakeQuotas{quotas: []*domain.VolumeQuota{{
			ID:               1,
			Volume:           ptr.Ptr(100.0),
			TransportTypeIDs: []int64{8},
		}}}
		uc := NewUseCase(quotas, &fakeBookings{used: 12}, nopLogger{})

		resp, err := uc.Execute(context.Background(), baseRequest)
		require.NoError(t, err)
		assert.False(t, resp.Constrained)
		assert.Empty(t, resp.Quotas)
		// израсходованный объём показывается и без ограничивающих квот
		assert.Equal(t, 12.0, resp.Used)
	})

	t.Run("некорректное направление отклоняется", func(t *testing.T) {
		uc := NewUseCase(&fakeQuotas{}, &fakeBookings{}, nopLogger{})

		req := *baseRequest
		req.Direction = "sideways"

		_, err := uc.Execute(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
