package block_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidFieldID     = "некорректный ID поля"
	msgInvalidRequestBody = "некорректное тело запроса, ожидаются startAt и endAt в формате RFC3339"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgSlotNotAvailable   = "выбранное время уже занято"
	msgInvalidRange       = "время окончания должно быть позже времени начала"
	msgPastBooking        = "нельзя заблокировать время в прошлом"
	msgFieldNotFound      = "поле не найдено"
	msgForbidden          = "блокировать время может только владелец поля"
)

type Handler struct {
	useCase BlockSlotUseCase
	logger  Logger
}

func NewHandler(useCase BlockSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/fields/{fieldId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	fieldID, err := strconv.ParseInt(mux.Vars(r)["fieldId"], 10, 64)
	if err != nil || fieldID <= 0 {
		h.logger.Warn("POST /fields/{id}/blocks - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fields/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Block(r.Context(), &createBooking.BlockRequest{
		OwnerID: ownerID,
		FieldID: fieldID,
		StartAt: req.StartAt.UTC(),
		EndAt:   req.EndAt.UTC(),
	})
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /fields/{id}/blocks - Slot not available: owner_id=%d, field_id=%d", ownerID, fieldID)
			handlers.RespondConflict(w, msgSlotNotAvailable)
		case errors.Is(err, createBooking.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, createBooking.ErrPastBooking):
			handlers.RespondBadRequest(w, msgPastBooking)
		case errors.Is(err, createBooking.ErrFieldNotFound):
			handlers.RespondNotFound(w, msgFieldNotFound)
		case errors.Is(err, createBooking.ErrAccessDenied):
			h.logger.Warn("POST /fields/{id}/blocks - Access denied: owner_id=%d, field_id=%d", ownerID, fieldID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
		default:
			h.logger.Error("POST /fields/{id}/blocks - Failed to block slot: owner_id=%d, field_id=%d, error=%v",
				ownerID, fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fields/{id}/blocks - Slot blocked successfully: booking_id=%d, field_id=%d", result.ID, fieldID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
