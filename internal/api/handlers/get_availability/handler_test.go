package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
)

type stubService struct {
	available  bool
	err        error
	start, end time.Time
}

func (s *stubService) CheckAvailability(_ context.Context, _ int64, start, end time.Time) (bool, error) {
	s.start, s.end = start, end
	return s.available, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fields/10/availability"+query, nil)
	return mux.SetURLVars(req, map[string]string{"fieldId": "10"})
}

func TestHandle(t *testing.T) {
	svc := &stubService{available: true}
	rec := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(rec, newRequest("?start=2030-05-14T12:00:00%2B02:00&end=2030-05-14T13:00:00Z"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2030, 5, 14, 10, 0, 0, 0, time.UTC), svc.start, "offset is normalised to UTC")

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Available)
	assert.Equal(t, "2030-05-14T10:00:00Z", body.StartAt)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"missing end", "?start=2030-05-14T10:00:00Z", nil, http.StatusBadRequest},
		{"inverted", "?start=2030-05-14T11:00:00Z&end=2030-05-14T10:00:00Z", bookings.ErrInvalidRange, http.StatusBadRequest},
		{"internal", "?start=2030-05-14T10:00:00Z&end=2030-05-14T11:00:00Z", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubService{err: tt.err}, nopLogger{}).Handle(rec, newRequest(tt.query))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
