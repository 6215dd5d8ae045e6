package delete_slot

import (
	"context"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

type SlotService interface {
	Delete(ctx context.Context, slotID int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
