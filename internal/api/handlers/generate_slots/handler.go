package generate_slots

import (
	"errors"
	"net/http"

	"github.com/avdmitr/YMS-SlotService/internal/api/handlers"
	"github.com/avdmitr/YMS-SlotService/internal/api/middleware"
	generateSlots "github.com/avdmitr/YMS-SlotService/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUser        = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные параметры генерации"
	msgInvalidDateRange   = "дата окончания раньше даты начала"
	msgRangeTooLong       = "период генерации превышает допустимый"
	msgDockNotFound       = "док не найден"
	msgNoDocks            = "под фильтр не попал ни один док"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/time-slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Генерация доступна только администраторам
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /time-slots/generate - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}
	if !actor.IsAdmin() {
		h.logger.Warn("POST /time-slots/generate - Access denied: user_id=%d", actor.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /time-slots/generate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidDateRange):
			h.logger.Warn("POST /time-slots/generate - Invalid date range: from=%s, to=%s", req.DateFrom, req.DateTo)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, generateSlots.ErrRangeTooLong):
			h.logger.Warn("POST /time-slots/generate - Range too long: from=%s, to=%s", req.DateFrom, req.DateTo)
			handlers.RespondBadRequest(w, msgRangeTooLong)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /time-slots/generate - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, generateSlots.ErrDockNotFound):
			h.logger.Warn("POST /time-slots/generate - Dock not found: dock_ids=%v", req.DockIDs)
			handlers.RespondNotFound(w, msgDockNotFound)

		case errors.Is(err, generateSlots.ErrNoDocks):
			h.logger.Warn("POST /time-slots/generate - No docks matched: object_id=%v", req.ObjectID)
			handlers.RespondNotFound(w, msgNoDocks)

		default:
			h.logger.Error("POST /time-slots/generate - Failed to generate slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /time-slots/generate - Generated slots: docks=%d, created=%d, skipped=%d, user_id=%d",
		result.DocksProcessed, result.Created, result.Skipped, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
