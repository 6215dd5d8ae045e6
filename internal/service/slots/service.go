package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	catalogRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/catalog"
	slotRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/slot"
	"github.com/avdmitr/YMS-SlotService/internal/service/slots/models"
)

// Service сервис административного управления слотами
type Service struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает один слот вручную, вне расписания дока.
// Окно (док, дата, начало, конец) уникально: попытка создать слот
// поверх существующего возвращает конфликт.
// Доступно только администраторам.
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: dock=%d, date=%s, window=%s-%s, user=%d",
		req.DockID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("Create: access denied for user=%d", req.Actor.UserID)
		return nil, ErrAccessDenied
	}
	if err := req.StartTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid start_time: %v", ErrInvalidInput, err)
	}
	if err := req.EndTime.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid end_time: %v", ErrInvalidInput, err)
	}
	if !req.StartTime.IsBefore(req.EndTime) {
		return nil, fmt.Errorf("%w: end_time must be after start_time", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}

	if _, err := s.catalogRepo.GetDock(ctx, req.DockID); err != nil {
		if errors.Is(err, catalogRepo.ErrDockNotFound) {
			s.logger.Warn("Create: dock id=%d not found", req.DockID)
			return nil, ErrDockNotFound
		}
		s.logger.Error("Create: failed to get dock id=%d: %v", req.DockID, err)
		return nil, fmt.Errorf("%w: Create - failed to get dock: %v", ErrInternal, err)
	}

	date := domain.DateOnly(req.Date)
	created, err := s.slotRepo.InsertMissing(ctx, []*domain.TimeSlot{{
		DockID:      req.DockID,
		SlotDate:    date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Capacity:    req.Capacity,
		IsAvailable: true,
	}})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}
	if created == 0 {
		s.logger.Warn("Create: slot already exists: dock=%d, date=%s, window=%s-%s",
			req.DockID, date.Format(domain.DateFormat), req.StartTime, req.EndTime)
		return nil, ErrSlotExists
	}

	slot, err := s.slotRepo.GetByWindow(ctx, req.DockID, date, req.StartTime, req.EndTime)
	if err != nil {
		s.logger.Error("Create: failed to read created slot: %v", err)
		return nil, fmt.Errorf("%w: Create - failed to read created slot: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created slot id=%d", slot.ID)
	return models.FromDomainSlot(slot), nil
}

// Journal получает слоты по фильтру, включая выключенные.
// Доступно только администраторам.
func (s *Service) Journal(ctx context.Context, req *models.JournalRequest) (*models.SlotListResponse, error) {
	s.logger.Info("Journal: fetching slots by user=%d, dock=%v", req.Actor.UserID, req.DockID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("Journal: access denied for user=%d", req.Actor.UserID)
		return nil, ErrAccessDenied
	}
	if req.DockID == nil && req.Date == nil && req.DateFrom.IsZero() {
		return nil, fmt.Errorf("%w: dock_id, date or date range is required", ErrInvalidInput)
	}

	slots, err := s.slotRepo.ListByFilter(ctx, domain.SlotFilter{
		DockID:   req.DockID,
		Date:     req.Date,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	})
	if err != nil {
		s.logger.Error("Journal: repository error: %v", err)
		return nil, fmt.Errorf("%w: Journal - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Journal: fetched %d slots", len(slots))
	return models.FromDomainSlotList(slots), nil
}

// SetAvailability включает или выключает слот для записи.
// Занятость и существующие бронирования не меняются: выключенный слот
// просто перестаёт принимать новые бронирования.
// Доступно только администраторам.
func (s *Service) SetAvailability(ctx context.Context, slotID int64, req *models.SetAvailabilityRequest) error {
	s.logger.Info("SetAvailability: slot id=%d, available=%t, user=%d", slotID, req.Available, req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("SetAvailability: access denied for user=%d", req.Actor.UserID)
		return ErrAccessDenied
	}

	if err := s.slotRepo.SetAvailability(ctx, slotID, req.Available); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("SetAvailability: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("SetAvailability: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: SetAvailability - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Delete удаляет слот. Слот с подтверждёнными бронированиями удалить
// нельзя: сначала бронирования должны быть отменены.
// Доступно только администраторам.
func (s *Service) Delete(ctx context.Context, slotID int64, actor domain.Actor) error {
	s.logger.Info("Delete: slot id=%d, user=%d", slotID, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("Delete: access denied for user=%d", actor.UserID)
		return ErrAccessDenied
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.slotRepo.GetByID(txCtx, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("Delete: slot id=%d not found", slotID)
				return ErrSlotNotFound
			}
			s.logger.Error("Delete: repository error for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		hasBookings, err := s.bookingRepo.HasConfirmedForSlots(txCtx, []int64{slotID})
		if err != nil {
			s.logger.Error("Delete: failed to check bookings for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: Delete - failed to check bookings: %v", ErrInternal, err)
		}
		if hasBookings {
			s.logger.Warn("Delete: slot id=%d has confirmed bookings", slotID)
			return ErrSlotHasBookings
		}

		if err := s.slotRepo.Delete(txCtx, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			s.logger.Error("Delete: repository error for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Delete: deleted slot id=%d", slotID)
		return nil
	})
}

// DeleteRange удаляет слоты дока за период. Если хотя бы один слот
// периода держит подтверждённое бронирование, не удаляется ничего.
// Доступно только администраторам.
func (s *Service) DeleteRange(ctx context.Context, req *models.DeleteRangeRequest) (*models.DeleteRangeResponse, error) {
	s.logger.Info("DeleteRange: dock=%d, from=%s, to=%s, user=%d",
		req.DockID, req.DateFrom.Format(domain.DateFormat), req.DateTo.Format(domain.DateFormat), req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("DeleteRange: access denied for user=%d", req.Actor.UserID)
		return nil, ErrAccessDenied
	}
	if req.DateFrom.IsZero() || req.DateTo.IsZero() || req.DateTo.Before(req.DateFrom) {
		return nil, fmt.Errorf("%w: invalid date range", ErrInvalidInput)
	}

	if _, err := s.catalogRepo.GetDock(ctx, req.DockID); err != nil {
		if errors.Is(err, catalogRepo.ErrDockNotFound) {
			s.logger.Warn("DeleteRange: dock id=%d not found", req.DockID)
			return nil, ErrDockNotFound
		}
		s.logger.Error("DeleteRange: failed to get dock id=%d: %v", req.DockID, err)
		return nil, fmt.Errorf("%w: DeleteRange - failed to get dock: %v", ErrInternal, err)
	}

	var deleted int64
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slots, err := s.slotRepo.ListByFilter(txCtx, domain.SlotFilter{
			DockID:   &req.DockID,
			DateFrom: req.DateFrom,
			DateTo:   req.DateTo,
		})
		if err != nil {
			s.logger.Error("DeleteRange: repository error: %v", err)
			return fmt.Errorf("%w: DeleteRange - repository error: %v", ErrInternal, err)
		}

		slotIDs := make([]int64, 0, len(slots))
		for _, slot := range slots {
			slotIDs = append(slotIDs, slot.ID)
		}

		hasBookings, err := s.bookingRepo.HasConfirmedForSlots(txCtx, slotIDs)
		if err != nil {
			s.logger.Error("DeleteRange: failed to check bookings: %v", err)
			return fmt.Errorf("%w: DeleteRange - failed to check bookings: %v", ErrInternal, err)
		}
		if hasBookings {
			s.logger.Warn("DeleteRange: dock=%d has confirmed bookings in range", req.DockID)
			return ErrSlotHasBookings
		}

		deleted, err = s.slotRepo.DeleteByDockAndRange(txCtx, req.DockID, req.DateFrom, req.DateTo)
		if err != nil {
			s.logger.Error("DeleteRange: repository error: %v", err)
			return fmt.Errorf("%w: DeleteRange - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("DeleteRange: deleted %d slots for dock=%d", deleted, req.DockID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.DeleteRangeResponse{Deleted: deleted}, nil
}
