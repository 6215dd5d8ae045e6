package domain

import "errors"

// Direction represents the booking direction: inbound delivery or outbound shipment.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

// ErrInvalidDirection возвращается при неизвестном значении направления
var ErrInvalidDirection = errors.New("direction must be 'in' or 'out'")

// ParseDirection validates and converts a raw direction value.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionIn, DirectionOut:
		return Direction(s), nil
	default:
		return "", ErrInvalidDirection
	}
}

// DockStatus represents the operational status of a dock.
type DockStatus string

const (
	DockActive      DockStatus = "active"
	DockInactive    DockStatus = "inactive"
	DockMaintenance DockStatus = "maintenance"
)

// DockType determines which booking directions a dock can serve.
type DockType string

const (
	DockEntrance  DockType = "entrance"
	DockExit      DockType = "exit"
	DockUniversal DockType = "universal"
)

// ErrInvalidDockType возвращается при неизвестном типе дока
var ErrInvalidDockType = errors.New("invalid dock type")

// ParseDockType validates and converts a raw dock type value.
func ParseDockType(s string) (DockType, error) {
	switch DockType(s) {
	case DockEntrance, DockExit, DockUniversal:
		return DockType(s), nil
	default:
		return "", ErrInvalidDockType
	}
}

// EligibleFor reports whether a dock of this type can serve the given direction.
// Entrance docks take inbound deliveries, exit docks take outbound shipments,
// universal docks take both.
func (t DockType) EligibleFor(d Direction) bool {
	switch t {
	case DockUniversal:
		return true
	case DockEntrance:
		return d == DirectionIn
	case DockExit:
		return d == DirectionOut
	default:
		return false
	}
}

// DockTypesFor returns the dock types eligible for a direction.
func DockTypesFor(d Direction) []DockType {
	if d == DirectionIn {
		return []DockType{DockEntrance, DockUniversal}
	}
	return []DockType{DockExit, DockUniversal}
}

// Dock represents a physical loading point.
type Dock struct {
	ID           int64
	Name         string
	Status       DockStatus
	DockType     DockType
	ObjectID     int64
	LengthMeters *int64
	WidthMeters  *int64
	MaxLoadKG    *int64
}

// DockFilter фильтр подбора доков для календаря и админских запросов.
// SupplierZoneID и TransportTypeID работают по правилу «дока без
// ограничений принимает всё»: док без привязанных зон / типов перевозки
// проходит фильтр.
type DockFilter struct {
	ObjectID        *int64
	DockTypes       []DockType
	SupplierZoneID  *int64
	TransportTypeID *int64
}

// Supplier represents a supplier from the reference catalog.
type Supplier struct {
	ID              int64
	Name            string
	ZoneID          *int64
	TransportTypeID *int64
	// VehicleTypeIDs ограничивает допустимые типы ТС.
	// Пустой список означает отсутствие ограничения.
	VehicleTypeIDs []int64
}

// AllowsVehicleType reports whether the supplier permits bookings
// with the given vehicle type.
func (s *Supplier) AllowsVehicleType(vehicleTypeID int64) bool {
	if len(s.VehicleTypeIDs) == 0 {
		return true
	}
	for _, id := range s.VehicleTypeIDs {
		if id == vehicleTypeID {
			return true
		}
	}
	return false
}

// VehicleType represents a vehicle type with its default processing duration.
type VehicleType struct {
	ID              int64
	Name            string
	DurationMinutes int
}
