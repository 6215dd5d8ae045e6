package get_slot_journal

import (
	"context"

	"github.com/avdmitr/YMS-SlotService/internal/service/slots/models"
)

type SlotService interface {
	Journal(ctx context.Context, req *models.JournalRequest) (*models.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
