package generate_slots

import (
	"fmt"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

func validateRequest(req *Request) error {
	if len(req.DockIDs) == 0 && req.ObjectID == nil {
		return fmt.Errorf("%w: either dock_ids or object_id is required", ErrInvalidInput)
	}
	if req.DateFrom.IsZero() || req.DateTo.IsZero() {
		return fmt.Errorf("%w: date_from and date_to are required", ErrInvalidInput)
	}
	if req.DateTo.Before(req.DateFrom) {
		return ErrInvalidDateRange
	}

	days := int(req.DateTo.Sub(req.DateFrom).Hours()/24) + 1
	if days > domain.MaxGenerateRangeDays {
		return fmt.Errorf("%w: %d days requested, maximum is %d", ErrRangeTooLong, days, domain.MaxGenerateRangeDays)
	}

	return nil
}
