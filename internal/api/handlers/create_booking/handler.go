package create_booking

import (
	"errors"
	"net/http"

	"github.com/avdmitr/YMS-SlotService/internal/api/handlers"
	"github.com/avdmitr/YMS-SlotService/internal/api/middleware"
	createBooking "github.com/avdmitr/YMS-SlotService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateOrTime     = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUser           = "отсутствует ID пользователя"
	msgInvalidInput          = "некорректные данные бронирования"
	msgDateInPast            = "дата бронирования уже прошла"
	msgVehicleTypeNotFound   = "тип транспортного средства не найден"
	msgSupplierNotFound      = "поставщик не найден"
	msgTransportTypeNotFound = "тип перевозки не найден"
	msgVehicleTypeNotAllowed = "тип транспортного средства не разрешён для поставщика"
	msgNoEligibleDocks       = "нет доков, подходящих под параметры бронирования"
	msgSlotNotAvailable      = "на выбранное время нет свободного слота"
	msgQuotaExceeded         = "превышена квота объёма на выбранную дату"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: user_id=%d, date=%s", actor.UserID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrVehicleTypeNotFound):
			h.logger.Warn("POST /bookings - Vehicle type not found: vehicle_type_id=%d", req.VehicleTypeID)
			handlers.RespondNotFound(w, msgVehicleTypeNotFound)

		case errors.Is(err, createBooking.ErrSupplierNotFound):
			h.logger.Warn("POST /bookings - Supplier not found: supplier_id=%v", req.SupplierID)
			handlers.RespondNotFound(w, msgSupplierNotFound)

		case errors.Is(err, createBooking.ErrTransportTypeNotFound):
			h.logger.Warn("POST /bookings - Transport type not found: transport_type_id=%v", req.TransportTypeID)
			handlers.RespondNotFound(w, msgTransportTypeNotFound)

		case errors.Is(err, createBooking.ErrVehicleTypeNotAllowed):
			h.logger.Warn("POST /bookings - Vehicle type not allowed for supplier: vehicle_type_id=%d, supplier_id=%v",
				req.VehicleTypeID, req.SupplierID)
			handlers.RespondBadRequest(w, msgVehicleTypeNotAllowed)

		case errors.Is(err, createBooking.ErrNoEligibleDocks):
			h.logger.Warn("POST /bookings - No eligible docks: user_id=%d, object_id=%d", actor.UserID, req.ObjectID)
			handlers.RespondError(w, http.StatusConflict, msgNoEligibleDocks)

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, object_id=%d, date=%s, time=%s",
				actor.UserID, req.ObjectID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrQuotaExceeded):
			h.logger.Warn("POST /bookings - Quota exceeded: user_id=%d, object_id=%d, date=%s",
				actor.UserID, req.ObjectID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgQuotaExceeded)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, object_id=%d, error=%v",
				actor.UserID, req.ObjectID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, dock_id=%d, slot_id=%d",
		result.ID, actor.UserID, result.DockID, result.TimeSlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
