package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/avdmitr/YMS-SlotService/internal/api/handlers"
	"github.com/avdmitr/YMS-SlotService/internal/api/middleware"
	"github.com/avdmitr/YMS-SlotService/internal/service/slots"
)

const (
	msgInvalidSlotID   = "некорректный ID слота"
	msgMissingUser     = "отсутствует ID пользователя"
	msgNotFound        = "слот не найден"
	msgForbidden       = "доступ запрещен"
	msgSlotHasBookings = "слот держит подтверждённые бронирования"
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

// Handle DELETE /api/v1/time-slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /time-slots/{id} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /time-slots/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.Delete(r.Context(), slotID, actor); err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("DELETE /time-slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("DELETE /time-slots/{id} - Access denied: slot_id=%d, user_id=%d", slotID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrSlotHasBookings):
			h.logger.Warn("DELETE /time-slots/{id} - Slot has bookings: slot_id=%d", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotHasBookings)

		default:
			h.logger.Error("DELETE /time-slots/{id} - Failed to delete slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /time-slots/{id} - Slot deleted: slot_id=%d, user_id=%d", slotID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
