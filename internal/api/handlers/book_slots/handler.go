package book_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	bookSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/book_slots"
)

const (
	msgInvalidFieldID     = "некорректный ID поля"
	msgInvalidRequestBody = "некорректное тело запроса, ожидаются date (YYYY-MM-DD) и slots (HH:MM)"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgTooManySlots       = "выбрано слишком много слотов"
	msgFieldNotFound      = "поле не найдено"
	msgSlotNotAvailable   = "время уже занято"
	msgPastBooking        = "время уже прошло"
	msgFieldInactive      = "поле не принимает бронирования"
	msgFieldClosed        = "поле закрыто в выбранный день"
	msgOutsideHours       = "время вне часов работы поля"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgManualClientDenied = "бронировать за клиента может только владелец поля"
	msgInternalRange      = "не удалось забронировать интервал"
)

type Handler struct {
	useCase BookSlotsUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/fields/{fieldId}/bookings/batch
// Исходы возвращаются по каждому интервалу со статусом 200, даже если часть интервалов не забронирована.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	fieldID, err := strconv.ParseInt(mux.Vars(r)["fieldId"], 10, 64)
	if err != nil || fieldID <= 0 {
		h.logger.Warn("POST /fields/{id}/bookings/batch - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	var req BookSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fields/{id}/bookings/batch - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /fields/{id}/bookings/batch - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, fieldID)
	if err != nil {
		h.logger.Warn("POST /fields/{id}/bookings/batch - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSlots.ErrTooManySlots):
			handlers.RespondBadRequest(w, msgTooManySlots)
		case errors.Is(err, bookSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		case errors.Is(err, bookSlots.ErrFieldNotFound):
			h.logger.Warn("POST /fields/{id}/bookings/batch - Field not found: field_id=%d", fieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)
		default:
			h.logger.Error("POST /fields/{id}/bookings/batch - Failed to book slots: user_id=%d, field_id=%d, error=%v",
				userID, fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fields/{id}/bookings/batch - Slots processed: user_id=%d, field_id=%d, created=%d, failed=%d",
		userID, fieldID, result.Created, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
