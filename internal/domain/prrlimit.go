package domain

// PrrLimit задаёт длительность погрузочно-разгрузочных работ для
// комбинации (поставщик, тип перевозки, тип ТС) на объекте. Любое из
// трёх измерений может быть не задано, тогда правило действует как
// более общее.
type PrrLimit struct {
	ID              int64
	ObjectID        int64
	SupplierID      *int64
	TransportTypeID *int64
	VehicleTypeID   *int64
	DurationMinutes int
}

// Specificity returns the number of bound dimensions. Used to order
// candidate rules from most to least specific.
func (p PrrLimit) Specificity() int {
	n := 0
	if p.SupplierID != nil {
		n++
	}
	if p.TransportTypeID != nil {
		n++
	}
	if p.VehicleTypeID != nil {
		n++
	}
	return n
}

// PrrLookup параметры подбора правила длительности.
type PrrLookup struct {
	ObjectID        int64
	SupplierID      *int64
	TransportTypeID *int64
	VehicleTypeID   *int64
}
