package resolve_duration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	catalogRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/catalog"
	prrRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/prrlimit"
	"github.com/avdmitr/YMS-SlotService/pkg/ptr"
)

type fakePrr struct {
	limit      *domain.PrrLimit
	lastLookup domain.PrrLookup
}

func (f *fakePrr) Resolve(_ context.Context, lookup domain.PrrLookup) (*domain.PrrLimit, error) {
	f.lastLookup = lookup
	if f.limit == nil {
		return nil, prrRepo.ErrLimitNotFound
	}
	return f.limit, nil
}

type fakeCatalog struct {
	vehicleTypes map[int64]*domain.VehicleType
}

func (f *fakeCatalog) GetVehicleType(_ context.Context, id int64) (*domain.VehicleType, error) {
	if vt, ok := f.vehicleTypes[id]; ok {
		return vt, nil
	}
	return nil, catalogRepo.ErrVehicleTypeNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute(t *testing.T) {
	t.Run("правило имеет приоритет", func(t *testing.T) {
		prr := &fakePrr{limit: &domain.PrrLimit{
			ID:              3,
			ObjectID:        10,
			SupplierID:      ptr.Ptr(int64(7)),
			DurationMinutes: 90,
		}}
		uc := NewUseCase(prr, &fakeCatalog{}, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			ObjectID:   10,
			SupplierID: ptr.Ptr(int64(7)),
		})
		require.NoError(t, err)
		assert.Equal(t, 90, resp.DurationMinutes)
		assert.Equal(t, SourcePrrLimit, resp.Source)
		require.NotNil(t, resp.LimitID)
		assert.Equal(t, int64(3), *resp.LimitID)
		assert.Equal(t, int64(10), prr.lastLookup.ObjectID)
	})

	t.Run("без правила берётся длительность типа ТС", func(t *testing.T) {
		catalog := &fakeCatalog{vehicleTypes: map[int64]*domain.VehicleType{
			2: {ID: 2, Name: "Газель", DurationMinutes: 45},
		}}
		uc := NewUseCase(&fakePrr{}, catalog, nopLogger{})

		resp, err := uc.Execute(context.Background(), &Request{
			ObjectID:      10,
			VehicleTypeID: ptr.Ptr(int64(2)),
		})
		require.NoError(t, err)
		assert.Equal(t, 45, resp.DurationMinutes)
		assert.Equal(t, SourceVehicleTypeDefault, resp.Source)
		assert.Nil(t, resp.LimitID)
	})

	t.Run("нет ни правила, ни типа ТС", func(t *testing.T) {
		uc := NewUseCase(&fakePrr{}, &fakeCatalog{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{ObjectID: 10})
		assert.ErrorIs(t, err, ErrDurationNotFound)
	})

	t.Run("неизвестный тип ТС в фолбэке", func(t *testing.T) {
		uc := NewUseCase(&fakePrr{}, &fakeCatalog{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{
			ObjectID:      10,
			VehicleTypeID: ptr.Ptr(int64(99)),
		})
		assert.ErrorIs(t, err, ErrDurationNotFound)
	})

	t.Run("object_id обязателен", func(t *testing.T) {
		uc := NewUseCase(&fakePrr{}, &fakeCatalog{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
