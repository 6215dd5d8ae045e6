package resolve_duration

import (
	"context"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

// PrrLimitRepository интерфейс репозитория правил ПРР
type PrrLimitRepository interface {
	Resolve(ctx context.Context, lookup domain.PrrLookup) (*domain.PrrLimit, error)
}

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetVehicleType(ctx context.Context, id int64) (*domain.VehicleType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
