package get_facility_stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/reporting"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/reporting/models"
)

type stubService struct {
	monthStart time.Time
	err        error
}

func (s *stubService) FacilityStats(_ context.Context, _, facilityID int64, monthStart time.Time) (*models.StatsResponse, error) {
	s.monthStart = monthStart
	if s.err != nil {
		return nil, s.err
	}
	return &models.StatsResponse{FacilityID: facilityID}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newRequest(query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/owner/facilities/3/stats"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"facilityId": "3"})
	return req.WithContext(middleware.WithUserID(req.Context(), 77))
}

func TestHandle_Month(t *testing.T) {
	clock := fixedTime{now: time.Date(2030, 5, 14, 18, 30, 0, 0, time.UTC)}

	t.Run("defaults to current month", func(t *testing.T) {
		svc := &stubService{}
		rec := httptest.NewRecorder()
		NewHandler(svc, nopLogger{}).WithTimeProvider(clock).Handle(rec, newRequest(""))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC), svc.monthStart)
	})

	t.Run("explicit month", func(t *testing.T) {
		svc := &stubService{}
		rec := httptest.NewRecorder()
		NewHandler(svc, nopLogger{}).WithTimeProvider(clock).Handle(rec, newRequest("?month=2030-02"))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC), svc.monthStart)
	})

	t.Run("invalid month", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&stubService{}, nopLogger{}).Handle(rec, newRequest("?month=2030-13"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandle_OwnershipErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not owner", reporting.ErrAccessDenied, http.StatusForbidden},
		{"no facility", reporting.ErrFacilityNotFound, http.StatusNotFound},
		{"internal", reporting.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubService{err: tt.err}, nopLogger{}).Handle(rec, newRequest(""))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
