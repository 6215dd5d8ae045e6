package delete_slot_range

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
	msgInvalidParams    = "некорректные параметры запроса"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUser      = "отсутствует ID пользователя"
	msgDockNotFound     = "док не найден"
	msgForbidden        = "доступ запрещен"
	msgInvalidDateRange = "некорректный период удаления"
	msgSlotsHaveBooking = "в периоде есть слоты с подтверждёнными бронированиями"
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

// Handle DELETE /api/v1/time-slots
// Удаляет слоты дока за период целиком, либо ничего.
// Query params: dockId, dateFrom, dateTo (обязательные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /time-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	query := r.URL.Query()
	dockID, err := strconv.ParseInt(query.Get("dockId"), 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /time-slots - Invalid dock ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	dateFrom, err := time.Parse(domain.DateFormat, query.Get("dateFrom"))
	if err != nil {
		h.logger.Warn("DELETE /time-slots - Invalid dateFrom: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	dateTo, err := time.Parse(domain.DateFormat, query.Get("dateTo"))
	if err != nil {
		h.logger.Warn("DELETE /time-slots - Invalid dateTo: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.DeleteRange(r.Context(), &models.DeleteRangeRequest{
		Actor:    actor,
		DockID:   dockID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /time-slots - Access denied: dock_id=%d, user_id=%d", dockID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("DELETE /time-slots - Invalid date range: dock_id=%d, error=%v", dockID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, slots.ErrDockNotFound):
			h.logger.Warn("DELETE /time-slots - Dock not found: dock_id=%d", dockID)
			handlers.RespondNotFound(w, msgDockNotFound)

		case errors.Is(err, slots.ErrSlotHasBookings):
			h.logger.Warn("DELETE /time-slots - Slots have bookings: dock_id=%d", dockID)
			handlers.RespondError(w, http.StatusConflict, msgSlotsHaveBooking)

		default:
			h.logger.Error("DELETE /time-slots - Failed to delete slots: dock_id=%d, error=%v", dockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /time-slots - Slots deleted: dock_id=%d, deleted=%d, user_id=%d",
		dockID, result.Deleted, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
