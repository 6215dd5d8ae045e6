package resolve_prr_duration

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avdmitr/YMS-SlotService/internal/api/handlers"
	resolveDuration "github.com/avdmitr/YMS-SlotService/internal/usecase/resolve_duration"
)

const (
	msgInvalidParams    = "некорректные параметры запроса"
	msgDurationNotFound = "длительность ПРР не определена"
)

type Handler struct {
	useCase ResolveDurationUseCase
	logger  Logger
}

func NewHandler(useCase ResolveDurationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// DurationResponse HTTP response model
type DurationResponse struct {
	DurationMinutes int    `json:"duration_minutes"`
	Source          string `json:"source"` // prr_limit или vehicle_type_default
	LimitID         *int64 `json:"limit_id,omitempty"`
}

// Handle GET /api/v1/prr-limits/duration
// Query params: objectId (обязательный), supplierId, transportTypeId,
// vehicleTypeId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	objectID, err := strconv.ParseInt(query.Get("objectId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /prr-limits/duration - Invalid object ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	useCaseReq := &resolveDuration.Request{ObjectID: objectID}
	if useCaseReq.SupplierID, err = parseOptionalID(query.Get("supplierId")); err != nil {
		h.logger.Warn("GET /prr-limits/duration - Invalid supplier ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	if useCaseReq.TransportTypeID, err = parseOptionalID(query.Get("transportTypeId")); err != nil {
		h.logger.Warn("GET /prr-limits/duration - Invalid transport type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	if useCaseReq.VehicleTypeID, err = parseOptionalID(query.Get("vehicleTypeId")); err != nil {
		h.logger.Warn("GET /prr-limits/duration - Invalid vehicle type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, resolveDuration.ErrInvalidInput):
			h.logger.Warn("GET /prr-limits/duration - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, resolveDuration.ErrDurationNotFound):
			h.logger.Warn("GET /prr-limits/duration - Duration not found: object_id=%d", objectID)
			handlers.RespondNotFound(w, msgDurationNotFound)

		default:
			h.logger.Error("GET /prr-limits/duration - Failed to resolve duration: object_id=%d, error=%v",
				objectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /prr-limits/duration - Duration resolved: object_id=%d, minutes=%d, source=%s",
		objectID, result.DurationMinutes, result.Source)
	handlers.RespondJSON(w, http.StatusOK, &DurationResponse{
		DurationMinutes: result.DurationMinutes,
		Source:          result.Source,
		LimitID:         result.LimitID,
	})
}

func parseOptionalID(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
