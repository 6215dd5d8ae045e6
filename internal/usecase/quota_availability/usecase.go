package quota_availability

import (
	"context"
	"fmt"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
)

// UseCase use case расчёта остатка квоты объёма на дату
type UseCase struct {
	quotaRepo   QuotaRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(quotaRepo QuotaRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		quotaRepo:   quotaRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute считает остаток квот для типа перевозки на дату.
// Использованный объём складывается из подтверждённых бронирований
// запрошенного типа перевозки, отменённые не учитываются. Объём
// возвращается и при отсутствии квот: дата без ограничения всё равно
// показывает, сколько уже забронировано.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotaAvailability: object=%d, direction=%s, date=%s, transport_type=%d",
		req.ObjectID, req.Direction, req.Date.Format(domain.DateFormat), req.TransportTypeID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotaAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Квоты, чья календарная координата покрывает дату
	quotas, err := uc.quotaRepo.FindForDate(ctx, req.ObjectID, req.Direction, req.Date)
	if err != nil {
		uc.logger.Error("QuotaAvailability: failed to find quotas: %v", err)
		return nil, fmt.Errorf("%w: failed to find quotas: %v", ErrInternal, err)
	}

	// 3. Израсходованный объём по запрошенному типу перевозки
	used, err := uc.bookingRepo.UsedVolume(ctx, req.ObjectID, req.Direction, req.Date, req.TransportTypeID)
	if err != nil {
		uc.logger.Error("QuotaAvailability: failed to count used volume: %v", err)
		return nil, fmt.Errorf("%w: failed to count used volume: %v", ErrInternal, err)
	}

	resp := &Response{Used: used}

	// 4. Остаток по каждой квоте, ограничивающей этот тип перевозки
	for _, q := range quotas {
		if !q.AppliesTo(req.TransportTypeID) {
			continue
		}

		volume := q.VolumeForDate(req.Date)

		availability := QuotaAvailability{
			QuotaID:          q.ID,
			Volume:           volume,
			Used:             used,
			AllowOverbooking: q.AllowOverbooking,
			TransportTypeIDs: q.TransportTypeIDs,
		}
		if volume != nil {
			remaining := *volume - used
			availability.Remaining = &remaining
		}

		resp.Quotas = append(resp.Quotas, availability)
	}

	resp.Constrained = len(resp.Quotas) > 0
	uc.logger.Info("QuotaAvailability: matched %d quotas", len(resp.Quotas))

	return resp, nil
}

func validateRequest(req *Request) error {
	if req.ObjectID <= 0 {
		return fmt.Errorf("%w: object_id is required", ErrInvalidInput)
	}
	if _, err := domain.ParseDirection(string(req.Direction)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.TransportTypeID <= 0 {
		return fmt.Errorf("%w: transport_type_id is required", ErrInvalidInput)
	}
	return nil
}
