package update_slot_availability

import (
	"context"

	"github.com/avdmitr/YMS-SlotService/internal/service/slots/models"
)

type SlotService interface {
	SetAvailability(ctx context.Context, slotID int64, req *models.SetAvailabilityRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
