package domain

import (
	"errors"
	"time"

	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// BookingStatus lifecycle state of a booking.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// ErrInvalidBookingStatus возвращается при неизвестном статусе бронирования
var ErrInvalidBookingStatus = errors.New("invalid booking status")

// ParseBookingStatus validates and converts a raw status value.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case BookingConfirmed, BookingCancelled:
		return BookingStatus(s), nil
	default:
		return "", ErrInvalidBookingStatus
	}
}

// Booking представляет бронирование одного места в слоте.
// Данные слота (док, дата, окно) денормализованы для простых выборок
// журнала и агрегатов квот.
type Booking struct {
	ID              int64
	TimeSlotID      int64
	UserID          int64
	DockID          int64
	ObjectID        int64
	SlotDate        time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	BookingType     Direction
	VehicleTypeID   int64
	VehiclePlate    string
	DriverFullName  string
	DriverPhone     string
	SupplierID      *int64
	TransportTypeID *int64
	Cubes           *float64
	TransportSheet  *string
	Status          BookingStatus
	CancelReason    *string
	CancelledAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive reports whether the booking still occupies its slot.
func (b Booking) IsActive() bool {
	return b.Status == BookingConfirmed
}

// CanBeViewedBy reports whether the actor may read this booking.
func (b Booking) CanBeViewedBy(a Actor) bool {
	return a.IsAdmin() || b.UserID == a.UserID
}

// CanBeCancelledBy reports whether the actor may cancel this booking.
func (b Booking) CanBeCancelledBy(a Actor) bool {
	return a.IsAdmin() || b.UserID == a.UserID
}

// BookingsFilter фильтр админского журнала бронирований.
type BookingsFilter struct {
	UserID   *int64
	ObjectID *int64
	DockID   *int64
	Status   *BookingStatus
	DateFrom *time.Time
	DateTo   *time.Time
}
