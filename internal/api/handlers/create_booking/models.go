package create_booking

import (
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	createBooking "github.com/avdmitr/YMS-SlotService/internal/usecase/create_booking"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ObjectID        int64    `json:"object_id"`
	BookingType     string   `json:"booking_type"` // "in" или "out"
	Date            string   `json:"date"`         // "2025-06-02"
	StartTime       string   `json:"start_time"`   // "10:00"
	VehicleTypeID   int64    `json:"vehicle_type_id"`
	VehiclePlate    string   `json:"vehicle_plate"`
	DriverFullName  string   `json:"driver_full_name"`
	DriverPhone     string   `json:"driver_phone"`
	SupplierID      *int64   `json:"supplier_id,omitempty"`
	TransportTypeID *int64   `json:"transport_type_id,omitempty"`
	Cubes           *float64 `json:"cubes,omitempty"`
	TransportSheet  *string  `json:"transport_sheet,omitempty"`
	PreferredDockID *int64   `json:"preferred_dock_id,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64    `json:"id"`
	TimeSlotID      int64    `json:"time_slot_id"`
	UserID          int64    `json:"user_id"`
	DockID          int64    `json:"dock_id"`
	ObjectID        int64    `json:"object_id"`
	SlotDate        string   `json:"slot_date"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	BookingType     string   `json:"booking_type"`
	VehicleTypeID   int64    `json:"vehicle_type_id"`
	VehiclePlate    string   `json:"vehicle_plate"`
	DriverFullName  string   `json:"driver_full_name"`
	DriverPhone     string   `json:"driver_phone"`
	SupplierID      *int64   `json:"supplier_id,omitempty"`
	TransportTypeID *int64   `json:"transport_type_id,omitempty"`
	Cubes           *float64 `json:"cubes,omitempty"`
	TransportSheet  *string  `json:"transport_sheet,omitempty"`
	Status          string   `json:"status"`
	DurationMinutes int      `json:"duration_minutes"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime := types.TimeString(r.StartTime)
	if err := startTime.Validate(); err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:          userID,
		ObjectID:        r.ObjectID,
		BookingType:     domain.Direction(r.BookingType),
		Date:            date,
		StartTime:       startTime,
		VehicleTypeID:   r.VehicleTypeID,
		VehiclePlate:    r.VehiclePlate,
		DriverFullName:  r.DriverFullName,
		DriverPhone:     r.DriverPhone,
		SupplierID:      r.SupplierID,
		TransportTypeID: r.TransportTypeID,
		Cubes:           r.Cubes,
		TransportSheet:  r.TransportSheet,
		PreferredDockID: r.PreferredDockID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		TimeSlotID:      resp.TimeSlotID,
		UserID:          resp.UserID,
		DockID:          resp.DockID,
		ObjectID:        resp.ObjectID,
		SlotDate:        resp.SlotDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		BookingType:     string(resp.BookingType),
		VehicleTypeID:   resp.VehicleTypeID,
		VehiclePlate:    resp.VehiclePlate,
		DriverFullName:  resp.DriverFullName,
		DriverPhone:     resp.DriverPhone,
		SupplierID:      resp.SupplierID,
		TransportTypeID: resp.TransportTypeID,
		Cubes:           resp.Cubes,
		TransportSheet:  resp.TransportSheet,
		Status:          string(resp.Status),
		DurationMinutes: resp.DurationMinutes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
