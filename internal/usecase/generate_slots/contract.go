package generate_slots

import (
	"context"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetDock(ctx context.Context, id int64) (*domain.Dock, error)
	ListDocks(ctx context.Context, filter domain.DockFilter) ([]*domain.Dock, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	ListByDocks(ctx context.Context, dockIDs []int64) ([]*domain.WorkSchedule, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	InsertMissing(ctx context.Context, slots []*domain.TimeSlot) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
