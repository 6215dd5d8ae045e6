package get_slot_journal

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/api/handlers"
	"github.com/avdmitr/YMS-SlotService/internal/api/middleware"
	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/internal/service/slots"
	"github.com/avdmitr/YMS-SlotService/internal/service/slots/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUser   = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgFilterNeeded  = "требуется фильтр по доку или датам"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/time-slots/journal
// Журнал слотов для администратора, включая выключенные.
// Query params: dockId, date, dateFrom, dateTo
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /time-slots/journal - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	serviceReq, err := parseQuery(r, actor)
	if err != nil {
		h.logger.Warn("GET /time-slots/journal - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Journal(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("GET /time-slots/journal - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /time-slots/journal - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgFilterNeeded)

		default:
			h.logger.Error("GET /time-slots/journal - Failed to get journal: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /time-slots/journal - Journal retrieved: total=%d, user_id=%d", result.Total, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request, actor domain.Actor) (*models.JournalRequest, error) {
	query := r.URL.Query()
	req := &models.JournalRequest{Actor: actor}

	if dockIDStr := query.Get("dockId"); dockIDStr != "" {
		dockID, err := strconv.ParseInt(dockIDStr, 10, 64)
		if err != nil {
			return nil, errors.New(msgInvalidParams)
		}
		req.DockID = &dockID
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.Date = &date
	}

	if dateFromStr := query.Get("dateFrom"); dateFromStr != "" {
		dateFrom, err := time.Parse(domain.DateFormat, dateFromStr)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.DateFrom = dateFrom
	}
	if dateToStr := query.Get("dateTo"); dateToStr != "" {
		dateTo, err := time.Parse(domain.DateFormat, dateToStr)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.DateTo = dateTo
	}

	return req, nil
}
