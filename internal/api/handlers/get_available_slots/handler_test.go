package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	getAvailableSlots "github.com/m04kA/SMC-FieldBookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

type stubUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	start := req.Date.Add(10 * time.Hour)
	return &getAvailableSlots.Response{
		Date:                req.Date,
		FieldID:             req.FieldID,
		SlotDurationMinutes: 60,
		Slots: []getAvailableSlots.Slot{{
			StartTime: types.TimeString("10:00"),
			EndTime:   types.TimeString("11:00"),
			StartAt:   start,
			EndAt:     start.Add(time.Hour),
			Available: false,
			Price:     decimal.NewFromInt(50),
		}},
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRequest(fieldID, query string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fields/"+fieldID+"/available-slots"+query, nil)
	return mux.SetURLVars(req, map[string]string{"fieldId": fieldID})
}

func TestHandle(t *testing.T) {
	uc := &stubUseCase{}
	rec := httptest.NewRecorder()

	NewHandler(uc, nopLogger{}).Handle(rec, newRequest("10", "?date=2030-05-14"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2030, 5, 14, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var body AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2030-05-14", body.Date)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "10:00", body.Slots[0].StartTime)
	assert.Equal(t, "2030-05-14T10:00:00Z", body.Slots[0].StartAt)
	assert.False(t, body.Slots[0].Available)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name    string
		fieldID string
		query   string
		err     error
		status  int
	}{
		{"missing date", "10", "", nil, http.StatusBadRequest},
		{"bad date", "10", "?date=2030/05/14", nil, http.StatusBadRequest},
		{"bad field", "abc", "?date=2030-05-14", nil, http.StatusBadRequest},
		{"field not found", "10", "?date=2030-05-14", getAvailableSlots.ErrFieldNotFound, http.StatusNotFound},
		{"internal", "10", "?date=2030-05-14", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			NewHandler(&stubUseCase{err: tt.err}, nopLogger{}).Handle(rec, newRequest(tt.fieldID, tt.query))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
