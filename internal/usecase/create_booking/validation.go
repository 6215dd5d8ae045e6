package create_booking

import (
	"fmt"
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if req.ObjectID <= 0 {
		return fmt.Errorf("%w: object_id is required", ErrInvalidInput)
	}
	if _, err := domain.ParseDirection(string(req.BookingType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start_time: %v", ErrInvalidInput, err)
	}
	if req.VehicleTypeID <= 0 {
		return fmt.Errorf("%w: vehicle_type_id is required", ErrInvalidInput)
	}
	if req.VehiclePlate == "" {
		return fmt.Errorf("%w: vehicle_plate is required", ErrInvalidInput)
	}
	if req.DriverFullName == "" {
		return fmt.Errorf("%w: driver_full_name is required", ErrInvalidInput)
	}
	if req.DriverPhone == "" {
		return fmt.Errorf("%w: driver_phone is required", ErrInvalidInput)
	}
	if req.Cubes != nil && *req.Cubes <= 0 {
		return fmt.Errorf("%w: cubes must be positive", ErrInvalidInput)
	}

	if domain.DateOnly(req.Date).Before(domain.DateOnly(now)) {
		return ErrDateInPast
	}

	return nil
}
