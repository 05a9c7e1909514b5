package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
)

const (
	msgInvalidFieldID = "некорректный ID поля"
	msgInvalidTime    = "параметры start и end обязательны, формат RFC3339"
	msgInvalidRange   = "время окончания должно быть позже времени начала"
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

// Handle GET /api/v1/fields/{fieldId}/availability
// Query params: start, end (required, RFC3339)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fieldID, err := strconv.ParseInt(mux.Vars(r)["fieldId"], 10, 64)
	if err != nil || fieldID <= 0 {
		h.logger.Warn("GET /fields/{id}/availability - Invalid field ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFieldID)
		return
	}

	query := r.URL.Query()
	start, errStart := time.Parse(time.RFC3339, query.Get("start"))
	end, errEnd := time.Parse(time.RFC3339, query.Get("end"))
	if errStart != nil || errEnd != nil {
		h.logger.Warn("GET /fields/{id}/availability - Invalid time params: start=%q, end=%q", query.Get("start"), query.Get("end"))
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	available, err := h.service.CheckAvailability(r.Context(), fieldID, start.UTC(), end.UTC())
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidRange):
			handlers.RespondBadRequest(w, msgInvalidRange)
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidTime)
		default:
			h.logger.Error("GET /fields/{id}/availability - Failed to check availability: field_id=%d, error=%v", fieldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fields/{id}/availability - Checked: field_id=%d, available=%t", fieldID, available)
	handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
		FieldID:   fieldID,
		StartAt:   start.UTC().Format(time.RFC3339),
		EndAt:     end.UTC().Format(time.RFC3339),
		Available: available,
	})
}
