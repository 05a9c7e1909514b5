package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WritesJSONWithFormattedMessage(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, LevelInfo)

	log.Info("CreateBooking: field=%d, user=%d", 7, 42)

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "CreateBooking: field=7, user=42", record["msg"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, LevelWarn)

	log.Debug("debug")
	log.Info("info")
	assert.Zero(t, buf.Len())

	log.Warn("warn")
	assert.NotZero(t, buf.Len())
}

func TestNew_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "error")
	require.NoError(t, err)
	log.Error("boom: %v", "db down")
	require.NoError(t, log.Close())
	require.NoError(t, log.Close(), "second close is a no-op")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "boom: db down")
}
