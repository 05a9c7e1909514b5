package get_recent_activity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/reporting"
)

const (
	msgUnauthorized      = "пользователь не аутентифицирован"
	msgInvalidFacilityID = "некорректный ID объекта"
	msgInvalidLimit      = "некорректный limit"
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

// Handle GET /api/v1/owner/facilities/{facilityId}/recent
// Query params: limit (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil || facilityID <= 0 {
		h.logger.Warn("GET /owner/facilities/{id}/recent - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	// 0 означает лимит по умолчанию
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
	}

	result, err := h.service.RecentActivity(r.Context(), ownerID, facilityID, limit)
	if err != nil {
		switch {
		case errors.Is(err, reporting.ErrFacilityNotFound):
			handlers.RespondNotFound(w, msgFacilityNotFound)
		case errors.Is(err, reporting.ErrAccessDenied):
			h.logger.Warn("GET /owner/facilities/{id}/recent - Access denied: owner_id=%d, facility_id=%d", ownerID, facilityID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, reporting.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFacilityID)
		default:
			h.logger.Error("GET /owner/facilities/{id}/recent - Failed to get recent activity: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owner/facilities/{id}/recent - Recent activity retrieved: facility_id=%d, count=%d", facilityID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
