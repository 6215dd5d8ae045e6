package get_quota_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/api/handlers"
	"github.com/avdmitr/YMS-SlotService/internal/domain"
	quotaAvailability "github.com/avdmitr/YMS-SlotService/internal/usecase/quota_availability"
)

const (
	msgInvalidParams    = "некорректные параметры запроса"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDirection = "некорректное направление, ожидается in или out"
	msgInvalidDateRange = "дата окончания раньше даты начала"
	msgRangeTooLong     = "запрошенный период превышает допустимый"
)

// Максимальный период запроса остатков, дней
const maxRangeDays = 31

type Handler struct {
	useCase QuotaAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase QuotaAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/volume-quotas/availability
// Query params: objectId, direction, transportTypeId (обязательные),
// dateFrom, dateTo (обязательные, либо единственный date)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	objectID, err := strconv.ParseInt(query.Get("objectId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /volume-quotas/availability - Invalid object ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	transportTypeID, err := strconv.ParseInt(query.Get("transportTypeId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /volume-quotas/availability - Invalid transport type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	direction, err := domain.ParseDirection(query.Get("direction"))
	if err != nil {
		h.logger.Warn("GET /volume-quotas/availability - Invalid direction: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDirection)
		return
	}

	dateFrom, dateTo, err := parseDateRange(query.Get("date"), query.Get("dateFrom"), query.Get("dateTo"))
	if err != nil {
		h.logger.Warn("GET /volume-quotas/availability - Invalid date range: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	// Остатки считаются на каждую дату периода отдельно
	response := &QuotaAvailabilityResponse{Days: make([]DayAvailability, 0)}
	for date := dateFrom; !date.After(dateTo); date = date.AddDate(0, 0, 1) {
		result, err := h.useCase.Execute(r.Context(), &quotaAvailability.Request{
			ObjectID:        objectID,
			Direction:       direction,
			Date:            date,
			TransportTypeID: transportTypeID,
		})
		if err != nil {
			if errors.Is(err, quotaAvailability.ErrInvalidInput) {
				h.logger.Warn("GET /volume-quotas/availability - Invalid input: %v", err)
				handlers.RespondBadRequest(w, msgInvalidParams)
				return
			}
			h.logger.Error("GET /volume-quotas/availability - Failed to get availability: object_id=%d, error=%v",
				objectID, err)
			handlers.RespondInternalError(w)
			return
		}

		response.Days = append(response.Days, FromUseCaseResponse(date, result))
	}

	h.logger.Info("GET /volume-quotas/availability - Availability retrieved: object_id=%d, days=%d",
		objectID, len(response.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}

func parseDateRange(date, dateFrom, dateTo string) (time.Time, time.Time, error) {
	// Единственная дата равносильна периоду из одного дня
	if date != "" {
		day, err := time.Parse(domain.DateFormat, date)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New(msgInvalidDate)
		}
		return day, day, nil
	}

	from, err := time.Parse(domain.DateFormat, dateFrom)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New(msgInvalidDate)
	}
	to, err := time.Parse(domain.DateFormat, dateTo)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New(msgInvalidDate)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New(msgInvalidDateRange)
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, errors.New(msgRangeTooLong)
	}

	return from, to, nil
}
