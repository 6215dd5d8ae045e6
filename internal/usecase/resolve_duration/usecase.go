package resolve_duration

import (
	"context"
	"errors"
	"fmt"

	"github.com/avdmitr/YMS-SlotService/internal/domain"
	catalogRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/catalog"
	prrRepo "github.com/avdmitr/YMS-SlotService/internal/infra/storage/prrlimit"
)

// UseCase use case подбора длительности ПРР
type UseCase struct {
	prrRepo     PrrLimitRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(prrRepo PrrLimitRepository, catalogRepo CatalogRepository, logger Logger) *UseCase {
	return &UseCase{
		prrRepo:     prrRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Execute подбирает длительность ПРР: сначала наиболее специфичное
// правило, при его отсутствии длительность по умолчанию типа ТС.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveDuration: object=%d, supplier=%v, transport_type=%v, vehicle_type=%v",
		req.ObjectID, req.SupplierID, req.TransportTypeID, req.VehicleTypeID)

	if req.ObjectID <= 0 {
		return nil, fmt.Errorf("%w: object_id is required", ErrInvalidInput)
	}

	limit, err := uc.prrRepo.Resolve(ctx, domain.PrrLookup{
		ObjectID:        req.ObjectID,
		SupplierID:      req.SupplierID,
		TransportTypeID: req.TransportTypeID,
		VehicleTypeID:   req.VehicleTypeID,
	})

	if err == nil {
		uc.logger.Info("ResolveDuration: matched limit id=%d, duration=%d", limit.ID, limit.DurationMinutes)
		return &Response{
			DurationMinutes: limit.DurationMinutes,
			Source:          SourcePrrLimit,
			LimitID:         &limit.ID,
		}, nil
	}

	if !errors.Is(err, prrRepo.ErrLimitNotFound) {
		uc.logger.Error("ResolveDuration: failed to resolve limit: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve limit: %v", ErrInternal, err)
	}

	// Правила нет, откатываемся на длительность типа ТС
	if req.VehicleTypeID == nil {
		uc.logger.Warn("ResolveDuration: no rule matched and vehicle_type_id is not set")
		return nil, ErrDurationNotFound
	}

	vt, err := uc.catalogRepo.GetVehicleType(ctx, *req.VehicleTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrVehicleTypeNotFound) {
			uc.logger.Warn("ResolveDuration: vehicle type id=%d not found", *req.VehicleTypeID)
			return nil, ErrDurationNotFound
		}
		uc.logger.Error("ResolveDuration: failed to get vehicle type id=%d: %v", *req.VehicleTypeID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle type: %v", ErrInternal, err)
	}

	uc.logger.Info("ResolveDuration: using vehicle type default, duration=%d", vt.DurationMinutes)
	return &Response{
		DurationMinutes: vt.DurationMinutes,
		Source:          SourceVehicleTypeDefault,
	}, nil
}
