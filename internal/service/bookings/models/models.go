package models

import (
	"errors"
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	Actor  domain.Actor
	Status *string
}

// ListBookingsRequest запрос админского журнала бронирований
type ListBookingsRequest struct {
	Actor    domain.Actor
	UserID   *int64
	ObjectID *int64
	DockID   *int64
	Status   *string
	DateFrom *time.Time
	DateTo   *time.Time
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		UserID:   r.UserID,
		ObjectID: r.ObjectID,
		DockID:   r.DockID,
		DateFrom: r.DateFrom,
		DateTo:   r.DateTo,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Actor  domain.Actor
	Reason *string
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64    `json:"id"`
	TimeSlotID      int64    `json:"time_slot_id"`
	UserID          int64    `json:"user_id"`
	DockID          int64    `json:"dock_id"`
	ObjectID        int64    `json:"object_id"`
	SlotDate        string   `json:"slot_date"`  // "2025-06-02"
	StartTime       string   `json:"start_time"` // "10:00"
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
	CancelReason    *string  `json:"cancellation_reason,omitempty"`
	CancelledAt     *string  `json:"cancelled_at,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		TimeSlotID:      b.TimeSlotID,
		UserID:          b.UserID,
		DockID:          b.DockID,
		ObjectID:        b.ObjectID,
		SlotDate:        b.SlotDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		EndTime:         b.EndTime.String(),
		BookingType:     string(b.BookingType),
		VehicleTypeID:   b.VehicleTypeID,
		VehiclePlate:    b.VehiclePlate,
		DriverFullName:  b.DriverFullName,
		DriverPhone:     b.DriverPhone,
		SupplierID:      b.SupplierID,
		TransportTypeID: b.TransportTypeID,
		Cubes:           b.Cubes,
		TransportSheet:  b.TransportSheet,
		Status:          string(b.Status),
		CancelReason:    b.CancelReason,
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}
	return resp
}

// FromDomainBookingList конвертирует список domain моделей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status, err := domain.ParseBookingStatus(s)
	if err != nil {
		return "", ErrInvalidStatus
	}
	return status, nil
}
