package get_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/api/handlers"
	"github.com/avdmitr/YMS-SlotService/internal/api/middleware"
	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/internal/service/bookings"
	"github.com/avdmitr/YMS-SlotService/internal/service/bookings/models"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUser   = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Журнал бронирований для администратора.
// Query params: userId, objectId, dockId, status, dateFrom, dateTo (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	serviceReq, err := parseQuery(r, actor)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.service.ListBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved: total=%d, user_id=%d", result.Total, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseQuery(r *http.Request, actor domain.Actor) (*models.ListBookingsRequest, error) {
	query := r.URL.Query()
	req := &models.ListBookingsRequest{Actor: actor}

	var err error
	if req.UserID, err = parseOptionalID(query.Get("userId")); err != nil {
		return nil, errors.New(msgInvalidParams)
	}
	if req.ObjectID, err = parseOptionalID(query.Get("objectId")); err != nil {
		return nil, errors.New(msgInvalidParams)
	}
	if req.DockID, err = parseOptionalID(query.Get("dockId")); err != nil {
		return nil, errors.New(msgInvalidParams)
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	if dateFromStr := query.Get("dateFrom"); dateFromStr != "" {
		dateFrom, err := time.Parse(domain.DateFormat, dateFromStr)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.DateFrom = &dateFrom
	}
	if dateToStr := query.Get("dateTo"); dateToStr != "" {
		dateTo, err := time.Parse(domain.DateFormat, dateToStr)
		if err != nil {
			return nil, errors.New(msgInvalidDate)
		}
		req.DateTo = &dateTo
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
