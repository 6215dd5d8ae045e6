package create_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/avdmitr/YMS-SlotService/internal/api/handlers"
	"github.com/avdmitr/YMS-SlotService/internal/api/middleware"
	"github.com/avdmitr/YMS-SlotService/internal/domain"
	"github.com/avdmitr/YMS-SlotService/internal/service/slots"
	"github.com/avdmitr/YMS-SlotService/internal/service/slots/models"
	"github.com/avdmitr/YMS-SlotService/pkg/types"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUser        = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные параметры слота"
	msgDockNotFound       = "док не найден"
	msgForbidden          = "доступ запрещен"
	msgSlotExists         = "слот на это окно уже существует"
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

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	DockID    int64  `json:"dock_id"`
	Date      string `json:"date"`       // "2025-06-02"
	StartTime string `json:"start_time"` // "10:00"
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity"`
}

// Handle POST /api/v1/time-slots
// Ручное создание слота вне расписания дока.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /time-slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		h.logger.Warn("POST /time-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), &models.CreateSlotRequest{
		Actor:     actor,
		DockID:    req.DockID,
		Date:      date,
		StartTime: types.TimeString(req.StartTime),
		EndTime:   types.TimeString(req.EndTime),
		Capacity:  req.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("POST /time-slots - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /time-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, slots.ErrDockNotFound):
			h.logger.Warn("POST /time-slots - Dock not found: dock_id=%d", req.DockID)
			handlers.RespondNotFound(w, msgDockNotFound)

		case errors.Is(err, slots.ErrSlotExists):
			h.logger.Warn("POST /time-slots - Slot exists: dock_id=%d, date=%s, window=%s-%s",
				req.DockID, req.Date, req.StartTime, req.EndTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotExists)

		default:
			h.logger.Error("POST /time-slots - Failed to create slot: dock_id=%d, error=%v", req.DockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /time-slots - Slot created: slot_id=%d, dock_id=%d, user_id=%d",
		result.ID, req.DockID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
