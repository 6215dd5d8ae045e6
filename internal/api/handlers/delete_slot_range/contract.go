package delete_slot_range

import (
	"context"

	"github.com/avdmitr/YMS-SlotService/internal/service/slots/models"
)

type SlotService interface {
	DeleteRange(ctx context.Context, req *models.DeleteRangeRequest) (*models.DeleteRangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
