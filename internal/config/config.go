package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, перекрывающих config.toml (BOOKING_DATABASE_HOST и т.д.)
const EnvPrefix = "BOOKING"

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server" envconfig:"SERVER"`
	Database    DatabaseConfig    `toml:"database" envconfig:"DATABASE"`
	Logs        LogsConfig        `toml:"logs" envconfig:"LOGS"`
	Metrics     MetricsConfig     `toml:"metrics" envconfig:"METRICS"`
	Redis       RedisConfig       `toml:"redis" envconfig:"REDIS"`
	RateLimit   RateLimitConfig   `toml:"rate_limit" envconfig:"RATE_LIMIT"`
	UserService UserServiceConfig `toml:"user_service" envconfig:"USER_SERVICE"`
	Booking     BookingConfig     `toml:"booking" envconfig:"BOOKING"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    int `toml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     int `toml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout int `toml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"HOST"`
	Port            int    `toml:"port" envconfig:"PORT"`
	User            string `toml:"user" envconfig:"USER"`
	Password        string `toml:"password" envconfig:"PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file" envconfig:"FILE"` // пусто - только stdout
	Level string `toml:"level" envconfig:"LEVEL"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"ENABLED"`
	Path        string `toml:"path" envconfig:"PATH"`
	ServiceName string `toml:"service_name" envconfig:"SERVICE_NAME"`
}

// RedisConfig хранилище счётчиков rate limit. Выключенный Redis отключает ограничение.
type RedisConfig struct {
	Enabled  bool   `toml:"enabled" envconfig:"ENABLED"`
	Addr     string `toml:"addr" envconfig:"ADDR"`
	Password string `toml:"password" envconfig:"PASSWORD"`
	DB       int    `toml:"db" envconfig:"DB"`
}

// RateLimitConfig лимит запросов на изменяющие маршруты: Requests за WindowSeconds
type RateLimitConfig struct {
	Requests      int64 `toml:"requests" envconfig:"REQUESTS"`
	WindowSeconds int   `toml:"window_seconds" envconfig:"WINDOW_SECONDS"`
}

type UserServiceConfig struct {
	URL     string `toml:"url" envconfig:"URL"`
	Timeout int    `toml:"timeout" envconfig:"TIMEOUT"` // секунды
}

// BookingConfig лимиты отчётов и пакетного бронирования
type BookingConfig struct {
	RecentActivityLimit    int `toml:"recent_activity_limit" envconfig:"RECENT_ACTIVITY_LIMIT"`
	MaxRecentActivityLimit int `toml:"max_recent_activity_limit" envconfig:"MAX_RECENT_ACTIVITY_LIMIT"`
	MaxSlotsPerBatch       int `toml:"max_slots_per_batch" envconfig:"MAX_SLOTS_PER_BATCH"`
}

// Load читает TOML файл, затем необязательный .env, затем переменные окружения BOOKING_*.
// Переменные окружения имеют приоритет над файлом.
func Load(path string) (*Config, error) {
	return load(path, ".env")
}

func load(path, envFile string) (*Config, error) {
	cfg := &Config{}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	// .env не перезаписывает уже выставленные переменные
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate возвращает все найденные проблемы одной ошибкой
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must be positive"))
	}

	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Database.Port <= 0 {
		errs = append(errs, fmt.Errorf("database.port must be positive, got %d", c.Database.Port))
	}

	switch c.Logs.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logs.level %q is not one of debug, info, warn, error", c.Logs.Level))
	}

	if c.Metrics.Enabled && (c.Metrics.Path == "" || c.Metrics.ServiceName == "") {
		errs = append(errs, errors.New("metrics.path and metrics.service_name are required when metrics are enabled"))
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
		}
		if c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0 {
			errs = append(errs, errors.New("rate_limit.requests and rate_limit.window_seconds must be positive"))
		}
	}

	if c.UserService.URL == "" {
		errs = append(errs, errors.New("user_service.url is required"))
	}

	if c.Booking.RecentActivityLimit <= 0 || c.Booking.MaxRecentActivityLimit < c.Booking.RecentActivityLimit {
		errs = append(errs, errors.New("booking.recent_activity_limit must be positive and not above max_recent_activity_limit"))
	}
	if c.Booking.MaxSlotsPerBatch <= 0 {
		errs = append(errs, errors.New("booking.max_slots_per_batch must be positive"))
	}

	return errors.Join(errs...)
}
