package get_facility_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/reporting"
)

const (
	msgUnauthorized      = "пользователь не аутентифицирован"
	msgInvalidFacilityID = "некорректный ID объекта"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgFacilityNotFound  = "объект не найден"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ReportingService
	logger  Logger
}

func NewHandler(service ReportingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owner/facilities/{facilityId}/bookings
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil || facilityID <= 0 {
		h.logger.Warn("GET /owner/facilities/{id}/bookings - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /owner/facilities/{id}/bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.FacilityBookings(r.Context(), ownerID, facilityID, date)
	if err != nil {
		switch {
		case errors.Is(err, reporting.ErrFacilityNotFound):
			handlers.RespondNotFound(w, msgFacilityNotFound)
		case errors.Is(err, reporting.ErrAccessDenied):
			h.logger.Warn("GET /owner/facilities/{id}/bookings - Access denied: owner_id=%d, facility_id=%d", ownerID, facilityID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, reporting.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)
		default:
			h.logger.Error("GET /owner/facilities/{id}/bookings - Failed to get bookings: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owner/facilities/{id}/bookings - Bookings retrieved: facility_id=%d, count=%d", facilityID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
