package create_booking

import (
	"context"
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	ListDocks(ctx context.Context, filter domain.DockFilter) ([]*domain.Dock, error)
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	GetVehicleType(ctx context.Context, id int64) (*domain.VehicleType, error)
	TransportTypeExists(ctx context.Context, id int64) (bool, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListBookable(ctx context.Context, dockIDs []int64, date time.Time, start types.TimeString) ([]*domain.TimeSlot, error)
	TryOccupy(ctx context.Context, slotID int64) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	UsedVolume(ctx context.Context, objectID int64, direction domain.Direction, date time.Time, transportTypeID int64) (float64, error)
}

// QuotaRepository интерфейс репозитория квот
type QuotaRepository interface {
	FindForDate(ctx context.Context, objectID int64, direction domain.Direction, date time.Time) ([]*domain.VolumeQuota, error)
}

// PrrLimitRepository интерфейс репозитория правил ПРР
type PrrLimitRepository interface {
	Resolve(ctx context.Context, lookup domain.PrrLookup) (*domain.PrrLimit, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
