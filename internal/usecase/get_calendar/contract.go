package get_calendar

import (
	"context"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetDock(ctx context.Context, id int64) (*domain.Dock, error)
	ListDocks(ctx context.Context, filter domain.DockFilter) ([]*domain.Dock, error)
	GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error)
	SupplierNames(ctx context.Context, ids []int64) (map[int64]string, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveBySlots(ctx context.Context, slotIDs []int64) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
