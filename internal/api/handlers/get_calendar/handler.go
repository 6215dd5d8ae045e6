package get_calendar

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/api/handlers"
	"github.com/avdmitr/YMS-SlotService/internal/domain"
	getCalendar "github.com/avdmitr/YMS-SlotService/internal/usecase/get_calendar"
)

const (
	msgInvalidParams    = "некорректные параметры запроса"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDirection = "некорректное направление, ожидается in или out"
	msgInvalidDateRange = "дата окончания раньше даты начала"
	msgRangeTooLong     = "запрошенный период превышает допустимый"
	msgDockNotFound     = "док не найден"
	msgSupplierNotFound = "поставщик не найден"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/time-slots
// Query params: dateFrom, dateTo (обязательные), objectId, dockId,
// direction, supplierId, transportTypeId, view=week|day (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /time-slots - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidDateRange):
			h.logger.Warn("GET /time-slots - Invalid date range")
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, getCalendar.ErrRangeTooLong):
			h.logger.Warn("GET /time-slots - Range too long")
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, getCalendar.ErrInvalidInput):
			h.logger.Warn("GET /time-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getCalendar.ErrDockNotFound):
			h.logger.Warn("GET /time-slots - Dock not found: dock_id=%v", useCaseReq.DockID)
			handlers.RespondNotFound(w, msgDockNotFound)

		case errors.Is(err, getCalendar.ErrSupplierNotFound):
			h.logger.Warn("GET /time-slots - Supplier not found: supplier_id=%v", useCaseReq.SupplierID)
			handlers.RespondNotFound(w, msgSupplierNotFound)

		default:
			h.logger.Error("GET /time-slots - Failed to get calendar: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /time-slots - Calendar retrieved: days=%d", len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func parseQuery(r *http.Request) (*getCalendar.Request, error) {
	query := r.URL.Query()

	dateFrom, err := time.Parse(domain.DateFormat, query.Get("dateFrom"))
	if err != nil {
		return nil, errors.New(msgInvalidDate)
	}
	dateTo, err := time.Parse(domain.DateFormat, query.Get("dateTo"))
	if err != nil {
		return nil, errors.New(msgInvalidDate)
	}

	req := &getCalendar.Request{
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Detailed: query.Get("view") == "day",
	}

	if req.ObjectID, err = parseOptionalID(query.Get("objectId")); err != nil {
		return nil, errors.New(msgInvalidParams)
	}
	if req.DockID, err = parseOptionalID(query.Get("dockId")); err != nil {
		return nil, errors.New(msgInvalidParams)
	}
	if req.SupplierID, err = parseOptionalID(query.Get("supplierId")); err != nil {
		return nil, errors.New(msgInvalidParams)
	}
	if req.TransportTypeID, err = parseOptionalID(query.Get("transportTypeId")); err != nil {
		return nil, errors.New(msgInvalidParams)
	}

	if directionStr := query.Get("direction"); directionStr != "" {
		direction, err := domain.ParseDirection(directionStr)
		if err != nil {
			return nil, errors.New(msgInvalidDirection)
		}
		req.Direction = &direction
	}

	return req, nil
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
