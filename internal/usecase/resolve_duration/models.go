package resolve_duration

// Источники длительности
const (
	SourcePrrLimit           = "prr_limit"
	SourceVehicleTypeDefault = "vehicle_type_default"
)

// Request модель запроса длительности ПРР
type Request struct {
	ObjectID        int64
	SupplierID      *int64
	TransportTypeID *int64
	VehicleTypeID   *int64
}

// Response модель ответа
type Response struct {
	DurationMinutes int
	Source          string // prr_limit или vehicle_type_default
	LimitID         *int64 // ID правила, если сработало правило
}
