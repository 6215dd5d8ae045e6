package quota_availability

import (
	"context"
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

// QuotaRepository интерфейс репозитория квот
type QuotaRepository interface {
	FindForDate(ctx context.Context, objectID int64, direction domain.Direction, date time.Time) ([]*domain.VolumeQuota, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	UsedVolume(ctx context.Context, objectID int64, direction domain.Direction, date time.Time, transportTypeID int64) (float64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
