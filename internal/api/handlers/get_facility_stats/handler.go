package get_facility_stats

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
	msgInvalidMonth      = "некорректный формат месяца, ожидается YYYY-MM"
	msgFacilityNotFound  = "объект не найден"
	msgForbidden         = "доступ запрещен"
)

// TimeProvider источник текущего времени для месяца по умолчанию
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now().UTC() }

type Handler struct {
	service ReportingService
	clock   TimeProvider
	logger  Logger
}

func NewHandler(service ReportingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		clock:   realTime{},
		logger:  logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (h *Handler) WithTimeProvider(tp TimeProvider) *Handler {
	h.clock = tp
	return h
}

// Handle GET /api/v1/owner/facilities/{facilityId}/stats
// Query params: month (optional, YYYY-MM; по умолчанию текущий месяц UTC)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	facilityID, err := strconv.ParseInt(mux.Vars(r)["facilityId"], 10, 64)
	if err != nil || facilityID <= 0 {
		h.logger.Warn("GET /owner/facilities/{id}/stats - Invalid facility ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFacilityID)
		return
	}

	var monthStart time.Time
	if monthStr := r.URL.Query().Get("month"); monthStr != "" {
		monthStart, err = time.Parse(domain.MonthFormat, monthStr)
		if err != nil {
			h.logger.Warn("GET /owner/facilities/{id}/stats - Invalid month: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return
		}
	} else {
		now := h.clock.Now().UTC()
		monthStart = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	}

	result, err := h.service.FacilityStats(r.Context(), ownerID, facilityID, monthStart)
	if err != nil {
		switch {
		case errors.Is(err, reporting.ErrFacilityNotFound):
			handlers.RespondNotFound(w, msgFacilityNotFound)
		case errors.Is(err, reporting.ErrAccessDenied):
			h.logger.Warn("GET /owner/facilities/{id}/stats - Access denied: owner_id=%d, facility_id=%d", ownerID, facilityID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, reporting.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidMonth)
		default:
			h.logger.Error("GET /owner/facilities/{id}/stats - Failed to get stats: facility_id=%d, error=%v", facilityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owner/facilities/{id}/stats - Stats retrieved: facility_id=%d, total=%d", facilityID, result.TotalBookings)
	handlers.RespondJSON(w, http.StatusOK, result)
}
