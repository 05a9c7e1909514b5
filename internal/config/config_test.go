package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8083
read_timeout = 10
write_timeout = 10
idle_timeout = 60
shutdown_timeout = 15

[database]
host = "localhost"
port = 5432
user = "postgres"
password = "postgres"
dbname = "field_booking"
sslmode = "disable"
max_open_conns = 20
max_idle_conns = 5
conn_max_lifetime = 300

[logs]
file = ""
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "field_booking_service"

[redis]
enabled = false
addr = "localhost:6379"

[rate_limit]
requests = 30
window_seconds = 60

[user_service]
url = "http://localhost:8081"
timeout = 5

[booking]
recent_activity_limit = 5
max_recent_activity_limit = 50
max_slots_per_batch = 48
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "config.toml", sampleConfig)

	cfg, err := load(path, filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, "field_booking", cfg.Database.DBName)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, int64(30), cfg.RateLimit.Requests)
	assert.Equal(t, 48, cfg.Booking.MaxSlotsPerBatch)
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=postgres dbname=field_booking sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "config.toml", sampleConfig)
	t.Setenv("BOOKING_DATABASE_HOST", "db.internal")
	t.Setenv("BOOKING_SERVER_HTTP_PORT", "9090")
	t.Setenv("BOOKING_BOOKING_MAX_SLOTS_PER_BATCH", "12")

	cfg, err := load(path, filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 12, cfg.Booking.MaxSlotsPerBatch)
	assert.Equal(t, 5432, cfg.Database.Port, "unset variables keep file values")
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeFile(t, "config.toml", sampleConfig)
	envFile := writeFile(t, ".env", "BOOKING_DATABASE_PASSWORD=from-dotenv\n")
	t.Setenv("BOOKING_DATABASE_PASSWORD", "")
	require.NoError(t, os.Unsetenv("BOOKING_DATABASE_PASSWORD"))

	cfg, err := load(path, envFile)

	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Database.Password)
}

func TestLoad_Errors(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "absent.toml"), ".env.absent")
	assert.Error(t, err)

	broken := writeFile(t, "config.toml", "[server\nhttp_port = ")
	_, err = load(broken, ".env.absent")
	assert.Error(t, err)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := &Config{
		Logs:    LogsConfig{Level: "verbose"},
		Redis:   RedisConfig{Enabled: true},
		Booking: BookingConfig{RecentActivityLimit: 10, MaxRecentActivityLimit: 5},
	}

	err := cfg.Validate()

	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{
		"server.http_port",
		"database.host",
		"logs.level",
		"redis.addr",
		"rate_limit.requests",
		"user_service.url",
		"booking.recent_activity_limit",
		"booking.max_slots_per_batch",
	} {
		assert.Contains(t, msg, want)
	}
}
