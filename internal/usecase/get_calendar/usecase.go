package get_calendar

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	catalogRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/catalog"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

// UseCase use case календаря доступности слотов
type UseCase struct {
	catalogRepo CatalogRepository
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute строит календарь доступности.
// В недельном представлении слоты всех подходящих доков с одинаковым
// окном сливаются в одну ячейку с суммарной вместимостью. В детальном
// представлении каждый слот отдаётся отдельно вместе с активными
// бронированиями.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCalendar: object=%v, dock=%v, direction=%v, supplier=%v, from=%s, to=%s",
		req.ObjectID, req.DockID, req.Direction, req.SupplierID,
		req.DateFrom.Format(domain.DateFormat), req.DateTo.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Подбираем доки
	dockIDs, err := uc.resolveDocks(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(dockIDs) == 0 {
		uc.logger.Info("GetCalendar: no docks matched the filter")
		return &Response{}, nil
	}

	// 3. Загружаем слоты периода
	slots, err := uc.slotRepo.ListByFilter(ctx, domain.SlotFilter{
		DockIDs:  dockIDs,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	})
	if err != nil {
		uc.logger.Error("GetCalendar: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 4. Собираем представление
	if req.Detailed {
		return uc.buildDetailed(ctx, slots)
	}
	return buildMerged(slots), nil
}

// resolveDocks подбирает доки по фильтрам запроса.
// Если задан поставщик, доки фильтруются по его зоне; когда под зону
// не попал ни один док, фильтр ослабляется до типа перевозки
// поставщика.
func (uc *UseCase) resolveDocks(ctx context.Context, req *Request) ([]int64, error) {
	if req.DockID != nil {
		if _, err := uc.catalogRepo.GetDock(ctx, *req.DockID); err != nil {
			if errors.Is(err, catalogRepo.ErrDockNotFound) {
				uc.logger.Warn("GetCalendar: dock id=%d not found", *req.DockID)
				return nil, ErrDockNotFound
			}
			uc.logger.Error("GetCalendar: failed to get dock id=%d: %v", *req.DockID, err)
			return nil, fmt.Errorf("%w: failed to get dock: %v", ErrInternal, err)
		}
		return []int64{*req.DockID}, nil
	}

	filter := domain.DockFilter{
		ObjectID:        req.ObjectID,
		TransportTypeID: req.TransportTypeID,
	}
	if req.Direction != nil {
		filter.DockTypes = domain.DockTypesFor(*req.Direction)
	}

	var supplier *domain.Supplier
	if req.SupplierID != nil {
		var err error
		supplier, err = uc.catalogRepo.GetSupplier(ctx, *req.SupplierID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrSupplierNotFound) {
				uc.logger.Warn("GetCalendar: supplier id=%d not found", *req.SupplierID)
				return nil, ErrSupplierNotFound
			}
			uc.logger.Error("GetCalendar: failed to get supplier id=%d: %v", *req.SupplierID, err)
			return nil, fmt.Errorf("%w: failed to get supplier: %v", ErrInternal, err)
		}
		filter.SupplierZoneID = supplier.ZoneID
		if filter.TransportTypeID == nil {
			filter.TransportTypeID = supplier.TransportTypeID
		}
	}

	docks, err := uc.catalogRepo.ListDocks(ctx, filter)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to list docks: %v", err)
		return nil, fmt.Errorf("%w: failed to list docks: %v", ErrInternal, err)
	}

	// Ослабление фильтра: зона поставщика не дала ни одного дока
	if len(docks) == 0 && supplier != nil && filter.SupplierZoneID != nil && filter.TransportTypeID != nil {
		uc.logger.Info("GetCalendar: no docks in supplier zone=%d, retrying by transport type=%d",
			*filter.SupplierZoneID, *filter.TransportTypeID)
		filter.SupplierZoneID = nil
		docks, err = uc.catalogRepo.ListDocks(ctx, filter)
		if err != nil {
			uc.logger.Error("GetCalendar: failed to list docks: %v", err)
			return nil, fmt.Errorf("%w: failed to list docks: %v", ErrInternal, err)
		}
	}

	dockIDs := make([]int64, 0, len(docks))
	for _, d := range docks {
		dockIDs = append(dockIDs, d.ID)
	}
	return dockIDs, nil
}

// buildMerged сливает слоты с одинаковой датой и окном в одну ячейку
func buildMerged(slots []*domain.TimeSlot) *Response {
	type cellKey struct {
		date  string
		start types.TimeString
	}

	resp := &Response{}
	cellIndex := make(map[cellKey]int)
	dayIndex := make(map[string]int)

	for _, s := range slots {
		dateKey := s.SlotDate.Format(domain.DateFormat)
		di, ok := dayIndex[dateKey]
		if !ok {
			resp.Days = append(resp.Days, DayView{Date: s.SlotDate})
			di = len(resp.Days) - 1
			dayIndex[dateKey] = di
		}

		// Выключенный слот отображается, но не принимает бронирования:
		// в DockIDs входят только включённые доки со свободным местом,
		// по ним клиент подсказывает док при бронировании
		bookable := s.IsAvailable && s.Occupancy < s.Capacity

		key := cellKey{date: dateKey, start: s.StartTime}
		if ci, ok := cellIndex[key]; ok {
			cell := &resp.Days[di].Slots[ci]
			cell.Capacity += s.Capacity
			cell.Occupancy += s.Occupancy
			if bookable {
				cell.DockIDs = append(cell.DockIDs, s.DockID)
			}
			cell.Available = cell.Available || s.IsAvailable
			cell.Status = domain.SlotStatusFor(cell.Occupancy, cell.Capacity)
			continue
		}

		view := SlotView{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Capacity:  s.Capacity,
			Occupancy: s.Occupancy,
			Status:    s.Status(),
			Available: s.IsAvailable,
		}
		if bookable {
			view.DockIDs = []int64{s.DockID}
		}
		resp.Days[di].Slots = append(resp.Days[di].Slots, view)
		cellIndex[key] = len(resp.Days[di].Slots) - 1
	}

	return resp
}

// buildDetailed отдаёт каждый слот отдельно с активными бронированиями
func (uc *UseCase) buildDetailed(ctx context.Context, slots []*domain.TimeSlot) (*Response, error) {
	slotIDs := make([]int64, 0, len(slots))
	for _, s := range slots {
		slotIDs = append(slotIDs, s.ID)
	}

	bookings, err := uc.bookingRepo.ListActiveBySlots(ctx, slotIDs)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	supplierNames, err := uc.resolveSupplierNames(ctx, bookings)
	if err != nil {
		return nil, err
	}

	bookingsBySlot := make(map[int64][]BookingView)
	for _, b := range bookings {
		view := BookingView{
			ID:             b.ID,
			UserID:         b.UserID,
			BookingType:    b.BookingType,
			VehiclePlate:   b.VehiclePlate,
			DriverFullName: b.DriverFullName,
			Cubes:          b.Cubes,
			TransportSheet: b.TransportSheet,
			Status:         b.Status,
		}
		if b.SupplierID != nil {
			if name, ok := supplierNames[*b.SupplierID]; ok {
				view.SupplierName = &name
			}
		}
		bookingsBySlot[b.TimeSlotID] = append(bookingsBySlot[b.TimeSlotID], view)
	}

	resp := &Response{}
	dayIndex := make(map[string]int)

	for _, s := range slots {
		dateKey := s.SlotDate.Format(domain.DateFormat)
		di, ok := dayIndex[dateKey]
		if !ok {
			resp.Days = append(resp.Days, DayView{Date: s.SlotDate})
			di = len(resp.Days) - 1
			dayIndex[dateKey] = di
		}

		slotID := s.ID
		resp.Days[di].Slots = append(resp.Days[di].Slots, SlotView{
			SlotID:    &slotID,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Capacity:  s.Capacity,
			Occupancy: s.Occupancy,
			Status:    s.Status(),
			Available: s.IsAvailable,
			DockIDs:   []int64{s.DockID},
			Bookings:  bookingsBySlot[s.ID],
		})
	}

	return resp, nil
}

// resolveSupplierNames собирает имена поставщиков бронирований для
// подсказок оператора
func (uc *UseCase) resolveSupplierNames(ctx context.Context, bookings []*domain.Booking) (map[int64]string, error) {
	seen := make(map[int64]bool)
	var ids []int64
	for _, b := range bookings {
		if b.SupplierID != nil && !seen[*b.SupplierID] {
			seen[*b.SupplierID] = true
			ids = append(ids, *b.SupplierID)
		}
	}

	names, err := uc.catalogRepo.SupplierNames(ctx, ids)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to resolve supplier names: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve supplier names: %v", ErrInternal, err)
	}
	return names, nil
}
