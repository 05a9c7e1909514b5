package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, ожидаются fieldId, startAt и endAt в формате RFC3339"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgInvalidRange       = "время окончания должно быть позже времени начала"
	msgPastBooking        = "нельзя забронировать время в прошлом"
	msgFieldNotFound      = "поле не найдено"
	msgFieldInactive      = "поле сейчас не принимает бронирования"
	msgFieldClosed        = "поле закрыто в выбранный день"
	msgOutsideHours       = "выбранное время вне часов работы поля"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgManualClientDenied = "бронировать за клиента может только владелец поля"
	msgInvalidInput       = "некорректные данные бронирования"
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
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, field_id=%d", userID, req.FieldID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createBooking.ErrPastBooking):
			handlers.RespondBadRequest(w, msgPastBooking)

		case errors.Is(err, createBooking.ErrFieldNotFound):
			h.logger.Warn("POST /bookings - Field not found: field_id=%d", req.FieldID)
			handlers.RespondNotFound(w, msgFieldNotFound)

		case errors.Is(err, createBooking.ErrFieldInactive):
			handlers.RespondBadRequest(w, msgFieldInactive)

		case errors.Is(err, createBooking.ErrFieldClosed):
			handlers.RespondBadRequest(w, msgFieldClosed)

		case errors.Is(err, createBooking.ErrOutsideOpeningHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings - Manual client by non-owner: user_id=%d, field_id=%d", userID, req.FieldID)
			handlers.RespondForbidden(w, msgManualClientDenied)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, field_id=%d, error=%v",
				userID, req.FieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, field_id=%d",
		result.ID, userID, req.FieldID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
