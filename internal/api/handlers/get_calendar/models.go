package get_calendar

import (
	"github.com/avdmitr/YMS-SlotService/internal/domain"
	getCalendar "github.com/avdmitr/YMS-SlotService/internal/usecase/get_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	Days []DayResponse `json:"days"`
}

// DayResponse слоты одной даты
type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// SlotResponse ячейка календаря. Available = false означает
// выключенную ячейку: она отображается, но не кликабельна.
type SlotResponse struct {
	SlotID    *int64            `json:"slot_id,omitempty"`
	StartTime string            `json:"start_time"`
	EndTime   string            `json:"end_time"`
	Capacity  int               `json:"capacity"`
	Occupancy int               `json:"occupancy"`
	Status    string            `json:"status"`
	Available bool              `json:"available"`
	DockIDs   []int64           `json:"dock_ids"`
	Bookings  []BookingResponse `json:"bookings,omitempty"`
}

// BookingResponse краткие данные бронирования в детальном представлении
type BookingResponse struct {
	ID             int64    `json:"id"`
	UserID         int64    `json:"user_id"`
	BookingType    string   `json:"booking_type"`
	VehiclePlate   string   `json:"vehicle_plate"`
	DriverFullName string   `json:"driver_full_name"`
	SupplierName   *string  `json:"supplier_name,omitempty"`
	Cubes          *float64 `json:"cubes,omitempty"`
	TransportSheet *string  `json:"transport_sheet,omitempty"`
	Status         string   `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	out := &CalendarResponse{
		Days: make([]DayResponse, 0, len(resp.Days)),
	}

	for _, day := range resp.Days {
		dayResp := DayResponse{
			Date:  day.Date.Format(domain.DateFormat),
			Slots: make([]SlotResponse, 0, len(day.Slots)),
		}

		for _, slot := range day.Slots {
			slotResp := SlotResponse{
				SlotID:    slot.SlotID,
				StartTime: slot.StartTime.String(),
				EndTime:   slot.EndTime.String(),
				Capacity:  slot.Capacity,
				Occupancy: slot.Occupancy,
				Status:    string(slot.Status),
				Available: slot.Available,
				DockIDs:   slot.DockIDs,
			}
			for _, b := range slot.Bookings {
				slotResp.Bookings = append(slotResp.Bookings, BookingResponse{
					ID:             b.ID,
					UserID:         b.UserID,
					BookingType:    string(b.BookingType),
					VehiclePlate:   b.VehiclePlate,
					DriverFullName: b.DriverFullName,
					SupplierName:   b.SupplierName,
					Cubes:          b.Cubes,
					TransportSheet: b.TransportSheet,
					Status:         string(b.Status),
				})
			}
			dayResp.Slots = append(dayResp.Slots, slotResp)
		}

		out.Days = append(out.Days, dayResp)
	}

	return out
}
