package get_calendar

import "fmt"

// maxCalendarRangeDays максимальный период одного запроса календаря
const maxCalendarRangeDays = 31

func validateRequest(req *Request) error {
	if req.DateFrom.IsZero() || req.DateTo.IsZero() {
		return fmt.Errorf("%w: date_from and date_to are required", ErrInvalidInput)
	}
	if req.DateTo.Before(req.DateFrom) {
		return ErrInvalidDateRange
	}

	days := int(req.DateTo.Sub(req.DateFrom).Hours()/24) + 1
	if days > maxCalendarRangeDays {
		return fmt.Errorf("%w: %d days requested, maximum is %d", ErrRangeTooLong, days, maxCalendarRangeDays)
	}

	if req.DockID == nil && req.ObjectID == nil {
		return fmt.Errorf("%w: either dock_id or object_id is required", ErrInvalidInput)
	}

	return nil
}
