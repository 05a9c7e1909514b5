package book_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	bookSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/book_slots"
	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

type stubUseCase struct {
	got  *bookSlots.Request
	resp *bookSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *bookSlots.Request) (*bookSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(fieldID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fields/"+fieldID+"/bookings/batch", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"fieldId": fieldID})
	return req.WithContext(middleware.WithUserID(req.Context(), 501))
}

func TestHandle_PerRangeOutcomes(t *testing.T) {
	day := time.Date(2030, 5, 14, 0, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &bookSlots.Response{
		Results: []bookSlots.RangeResult{
			{
				StartAt: day.Add(10 * time.Hour),
				EndAt:   day.Add(12 * time.Hour),
				Booking: &createBooking.Response{ID: 1, Price: decimal.NewFromInt(100)},
			},
			{
				StartAt: day.Add(14 * time.Hour),
				EndAt:   day.Add(15 * time.Hour),
				Err:     fmt.Errorf("wrapped: %w", createBooking.ErrSlotNotAvailable),
			},
			{
				StartAt: day.Add(20 * time.Hour),
				EndAt:   day.Add(21 * time.Hour),
				Err:     createBooking.ErrOutsideOpeningHours,
			},
		},
		QuotedTotal: decimal.NewFromInt(200),
		Created:     1,
		Failed:      2,
	}}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("10", `{"date":"2030-05-14","slots":["10:00","11:00","14:00","20:00"]}`))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(10), uc.got.FieldID)
	assert.Len(t, uc.got.SlotStarts, 4)
	assert.True(t, uc.got.Date.Equal(day))

	var body BookSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 3)
	assert.Equal(t, RangeStatusCreated, body.Results[0].Status)
	require.NotNil(t, body.Results[0].BookingID)
	assert.Equal(t, int64(1), *body.Results[0].BookingID)
	assert.Equal(t, RangeStatusConflict, body.Results[1].Status)
	assert.Equal(t, RangeStatusRejected, body.Results[2].Status)
	assert.True(t, decimal.NewFromInt(200).Equal(body.QuotedTotal))
	assert.Equal(t, 1, body.Created)
	assert.Equal(t, 2, body.Failed)
}

func TestHandle_RequestErrors(t *testing.T) {
	tests := []struct {
		name    string
		fieldID string
		body    string
		err     error
		status  int
	}{
		{"bad field id", "x", `{"date":"2030-05-14","slots":["10:00"]}`, nil, http.StatusBadRequest},
		{"no slots", "10", `{"date":"2030-05-14","slots":[]}`, nil, http.StatusBadRequest},
		{"bad slot format", "10", `{"date":"2030-05-14","slots":["25:00"]}`, nil, http.StatusBadRequest},
		{"bad date", "10", `{"date":"14.05.2030","slots":["10:00"]}`, nil, http.StatusBadRequest},
		{"too many", "10", `{"date":"2030-05-14","slots":["10:00"]}`, bookSlots.ErrTooManySlots, http.StatusBadRequest},
		{"field not found", "10", `{"date":"2030-05-14","slots":["10:00"]}`, bookSlots.ErrFieldNotFound, http.StatusNotFound},
		{"internal", "10", `{"date":"2030-05-14","slots":["10:00"]}`, bookSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubUseCase{err: tt.err}, nopLogger{}).Handle(rec, newRequest(tt.fieldID, tt.body))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
