package middleware

import "context"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Limiter ограничитель частоты запросов
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int64, err error)
	Limit() int64
}
