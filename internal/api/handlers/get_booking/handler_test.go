package get_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

type stubService struct {
	err error
}

func (s *stubService) GetByID(_ context.Context, id int64, _ int64) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: "WAITING"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(bookingID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil)
	req = mux.SetURLVars(req, map[string]string{"bookingId": bookingID})
	return req.WithContext(middleware.WithUserID(req.Context(), 501))
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name      string
		bookingID string
		err       error
		status    int
	}{
		{"own booking", "5", nil, http.StatusOK},
		{"hidden or missing", "5", fmt.Errorf("wrapped: %w", bookings.ErrBookingNotFound), http.StatusNotFound},
		{"bad id", "-1", nil, http.StatusBadRequest},
		{"internal", "5", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubService{err: tt.err}, nopLogger{}).Handle(rec, newRequest(tt.bookingID))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
