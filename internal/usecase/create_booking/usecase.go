package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	catalogRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/catalog"
	prrlimitRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/prrlimit"
)

// UseCase use case создания бронирования
type UseCase struct {
	catalogRepo  CatalogRepository
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	quotaRepo    QuotaRepository
	prrRepo      PrrLimitRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	quotaRepo QuotaRepository,
	prrRepo PrrLimitRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		quotaRepo:    quotaRepo,
		prrRepo:      prrRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет создание бронирования.
// Док выбирает сервер: из доков, подходящих по направлению, зоне
// поставщика и типу перевозки, берётся слот с наименьшим ID дока.
// Проверка квоты, занятие места в слоте и запись бронирования идут
// в одной сериализуемой транзакции, гонка по вместимости исключается
// условным инкрементом occupancy.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, object=%d, type=%s, date=%s, time=%s",
		req.UserID, req.ObjectID, req.BookingType, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Тип ТС обязан существовать, его длительность ПРР идёт по умолчанию
	vehicleType, err := uc.catalogRepo.GetVehicleType(ctx, req.VehicleTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrVehicleTypeNotFound) {
			uc.logger.Warn("CreateBooking: vehicle type id=%d not found", req.VehicleTypeID)
			return nil, ErrVehicleTypeNotFound
		}
		uc.logger.Error("CreateBooking: failed to get vehicle type id=%d: %v", req.VehicleTypeID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle type: %v", ErrInternal, err)
	}

	// 3. Поставщик: его зона сужает список доков, его тип перевозки
	// подставляется, если клиент тип не указал
	transportTypeID := req.TransportTypeID
	var supplier *domain.Supplier
	if req.SupplierID != nil {
		var err error
		supplier, err = uc.catalogRepo.GetSupplier(ctx, *req.SupplierID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrSupplierNotFound) {
				uc.logger.Warn("CreateBooking: supplier id=%d not found", *req.SupplierID)
				return nil, ErrSupplierNotFound
			}
			uc.logger.Error("CreateBooking: failed to get supplier id=%d: %v", *req.SupplierID, err)
			return nil, fmt.Errorf("%w: failed to get supplier: %v", ErrInternal, err)
		}
		if !supplier.AllowsVehicleType(req.VehicleTypeID) {
			uc.logger.Warn("CreateBooking: vehicle type id=%d is not allowed for supplier id=%d",
				req.VehicleTypeID, supplier.ID)
			return nil, ErrVehicleTypeNotAllowed
		}
		if transportTypeID == nil {
			transportTypeID = supplier.TransportTypeID
		}
	}

	// 4. Тип перевозки обязан существовать, если указан
	if transportTypeID != nil {
		exists, err := uc.catalogRepo.TransportTypeExists(ctx, *transportTypeID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check transport type id=%d: %v", *transportTypeID, err)
			return nil, fmt.Errorf("%w: failed to check transport type: %v", ErrInternal, err)
		}
		if !exists {
			uc.logger.Warn("CreateBooking: transport type id=%d not found", *transportTypeID)
			return nil, ErrTransportTypeNotFound
		}
	}

	// 5. Подбираем подходящие доки
	dockIDs, err := uc.eligibleDocks(ctx, req, supplier, transportTypeID)
	if err != nil {
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции.
	// Сначала вместимость, затем квота: когда нарушены оба ограничения,
	// клиент видит ошибку вместимости.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Слоты со свободными местами на это время
		candidates, err := uc.slotRepo.ListBookable(txCtx, dockIDs, req.Date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list bookable slots: %v", err)
			return fmt.Errorf("%w: failed to list bookable slots: %v", ErrInternal, err)
		}
		if len(candidates) == 0 {
			uc.logger.Warn("CreateBooking: no bookable slots at %s %s",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// Желаемый док пробуем первым, остальные идут по возрастанию ID
		candidates = reorderPreferred(candidates, req.PreferredDockID)

		// 6.2. Занимаем место: условный инкремент либо проходит, либо
		// слот успел заполниться и мы пробуем следующий док
		var slot *domain.TimeSlot
		for _, c := range candidates {
			occupied, err := uc.slotRepo.TryOccupy(txCtx, c.ID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to occupy slot id=%d: %v", c.ID, err)
				return fmt.Errorf("%w: failed to occupy slot: %v", ErrInternal, err)
			}
			if occupied {
				slot = c
				break
			}
		}
		if slot == nil {
			uc.logger.Warn("CreateBooking: all candidate slots are full")
			return ErrSlotNotAvailable
		}

		// 6.3. Проверка квоты объёма; откат транзакции вернёт инкремент
		if err := uc.checkQuota(txCtx, req, transportTypeID); err != nil {
			return err
		}

		// 6.4. Создаем бронирование с денормализацией данных слота
		booking := &domain.Booking{
			TimeSlotID:      slot.ID,
			UserID:          req.UserID,
			DockID:          slot.DockID,
			ObjectID:        req.ObjectID,
			SlotDate:        req.Date,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			BookingType:     req.BookingType,
			VehicleTypeID:   req.VehicleTypeID,
			VehiclePlate:    req.VehiclePlate,
			DriverFullName:  req.DriverFullName,
			DriverPhone:     req.DriverPhone,
			SupplierID:      req.SupplierID,
			TransportTypeID: transportTypeID,
			Cubes:           req.Cubes,
			TransportSheet:  req.TransportSheet,
			Status:          domain.BookingConfirmed,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, slot=%d, dock=%d",
		result.ID, result.TimeSlotID, result.DockID)

	resp := toResponse(result)
	resp.DurationMinutes = uc.resolveDuration(ctx, req, transportTypeID, vehicleType)
	return resp, nil
}

// resolveDuration подбирает справочную длительность ПРР: наиболее
// специфичное правило, иначе длительность по умолчанию для типа ТС.
// Ошибка подбора бронирование не отменяет.
func (uc *UseCase) resolveDuration(ctx context.Context, req *Request, transportTypeID *int64, vehicleType *domain.VehicleType) int {
	limit, err := uc.prrRepo.Resolve(ctx, domain.PrrLookup{
		ObjectID:        req.ObjectID,
		SupplierID:      req.SupplierID,
		TransportTypeID: transportTypeID,
		VehicleTypeID:   &req.VehicleTypeID,
	})
	if err != nil {
		if !errors.Is(err, prrlimitRepo.ErrLimitNotFound) {
			uc.logger.Warn("CreateBooking: failed to resolve prr duration: %v", err)
		}
		return vehicleType.DurationMinutes
	}
	return limit.DurationMinutes
}

// eligibleDocks подбирает доки по направлению, зоне поставщика и типу
// перевозки. Когда зона поставщика не дала ни одного дока, фильтр
// ослабляется до типа перевозки.
func (uc *UseCase) eligibleDocks(ctx context.Context, req *Request, supplier *domain.Supplier, transportTypeID *int64) ([]int64, error) {
	filter := domain.DockFilter{
		ObjectID:        &req.ObjectID,
		DockTypes:       domain.DockTypesFor(req.BookingType),
		TransportTypeID: transportTypeID,
	}
	if supplier != nil {
		filter.SupplierZoneID = supplier.ZoneID
	}

	docks, err := uc.catalogRepo.ListDocks(ctx, filter)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list docks: %v", err)
		return nil, fmt.Errorf("%w: failed to list docks: %v", ErrInternal, err)
	}

	if len(docks) == 0 && filter.SupplierZoneID != nil && transportTypeID != nil {
		uc.logger.Info("CreateBooking: no docks in supplier zone=%d, retrying by transport type=%d",
			*filter.SupplierZoneID, *transportTypeID)
		filter.SupplierZoneID = nil
		docks, err = uc.catalogRepo.ListDocks(ctx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list docks: %v", err)
			return nil, fmt.Errorf("%w: failed to list docks: %v", ErrInternal, err)
		}
	}

	if len(docks) == 0 {
		uc.logger.Warn("CreateBooking: no eligible docks for object=%d, type=%s", req.ObjectID, req.BookingType)
		return nil, ErrNoEligibleDocks
	}

	dockIDs := make([]int64, 0, len(docks))
	for _, d := range docks {
		dockIDs = append(dockIDs, d.ID)
	}
	return dockIDs, nil
}

// checkQuota проверяет остаток квот объёма для типа перевозки.
// Квота с разрешённым овербукингом или без ограничения объёма пропускает
// любое бронирование. Бронирование без объёма квоту не расходует.
func (uc *UseCase) checkQuota(ctx context.Context, req *Request, transportTypeID *int64) error {
	if transportTypeID == nil {
		return nil
	}

	quotas, err := uc.quotaRepo.FindForDate(ctx, req.ObjectID, req.BookingType, req.Date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to find quotas: %v", err)
		return fmt.Errorf("%w: failed to find quotas: %v", ErrInternal, err)
	}

	cubes := 0.0
	if req.Cubes != nil {
		cubes = *req.Cubes
	}

	for _, q := range quotas {
		if !q.AppliesTo(*transportTypeID) || q.AllowOverbooking {
			continue
		}

		volume := q.VolumeForDate(req.Date)
		if volume == nil {
			continue
		}

		used, err := uc.bookingRepo.UsedVolume(ctx, req.ObjectID, req.BookingType, req.Date, *transportTypeID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to count used volume for quota=%d: %v", q.ID, err)
			return fmt.Errorf("%w: failed to count used volume: %v", ErrInternal, err)
		}

		if used+cubes > *volume {
			uc.logger.Warn("CreateBooking: quota id=%d exceeded: used=%.2f, requested=%.2f, limit=%.2f",
				q.ID, used, cubes, *volume)
			return ErrQuotaExceeded
		}
	}

	return nil
}

// reorderPreferred ставит слот желаемого дока в начало списка
func reorderPreferred(candidates []*domain.TimeSlot, preferredDockID *int64) []*domain.TimeSlot {
	if preferredDockID == nil {
		return candidates
	}
	for i, c := range candidates {
		if c.DockID == *preferredDockID && i > 0 {
			reordered := make([]*domain.TimeSlot, 0, len(candidates))
			reordered = append(reordered, c)
			reordered = append(reordered, candidates[:i]...)
			reordered = append(reordered, candidates[i+1:]...)
			return reordered
		}
	}
	return candidates
}

func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		TimeSlotID:      b.TimeSlotID,
		UserID:          b.UserID,
		DockID:          b.DockID,
		ObjectID:        b.ObjectID,
		SlotDate:        b.SlotDate,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		BookingType:     b.BookingType,
		Status:          b.Status,
		VehicleTypeID:   b.VehicleTypeID,
		VehiclePlate:    b.VehiclePlate,
		DriverFullName:  b.DriverFullName,
		DriverPhone:     b.DriverPhone,
		SupplierID:      b.SupplierID,
		TransportTypeID: b.TransportTypeID,
		Cubes:           b.Cubes,
		TransportSheet:  b.TransportSheet,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
