package get_quota_availability

import (
	"context"

	quotaAvailability "github.com/avdmitr/YMS-SlotService/internal/usecase/quota_availability"
)

type QuotaAvailabilityUseCase interface {
	Execute(ctx context.Context, req *quotaAvailability.Request) (*quotaAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
