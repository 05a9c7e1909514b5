package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, body.Code)
	assert.Equal(t, "занято", body.Message)
}

func TestRespondJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		FieldID int64 `json:"fieldId"`
	}

	t.Run("valid", func(t *testing.T) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fieldId": 3}`))
		require.NoError(t, DecodeJSON(req, &p))
		assert.Equal(t, int64(3), p.FieldID)
	})

	t.Run("unknown field", func(t *testing.T) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fieldId": 3, "price": 1}`))
		assert.Error(t, DecodeJSON(req, &p))
	})

	t.Run("trailing object", func(t *testing.T) {
		var p payload
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fieldId": 3}{"fieldId": 4}`))
		assert.Error(t, DecodeJSON(req, &p))
	})
}

func TestValidate(t *testing.T) {
	type payload struct {
		FieldID int64  `validate:"required,gt=0"`
		Name    string `validate:"omitempty,max=3"`
	}

	assert.NoError(t, Validate(payload{FieldID: 1}))

	err := Validate(payload{Name: "слишком"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FieldID: required")
	assert.Contains(t, err.Error(), "Name: max")
}
