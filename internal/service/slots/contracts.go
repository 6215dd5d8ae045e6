package slots

import (
	"context"
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	InsertMissing(ctx context.Context, slots []*domain.TimeSlot) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error)
	GetByWindow(ctx context.Context, dockID int64, date time.Time, start, end types.TimeString) (*domain.TimeSlot, error)
	ListByFilter(ctx context.Context, filter domain.SlotFilter) ([]*domain.TimeSlot, error)
	SetAvailability(ctx context.Context, slotID int64, available bool) error
	Delete(ctx context.Context, slotID int64) error
	DeleteByDockAndRange(ctx context.Context, dockID int64, from, to time.Time) (int64, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	HasConfirmedForSlots(ctx context.Context, slotIDs []int64) (bool, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetDock(ctx context.Context, id int64) (*domain.Dock, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
