package get_availability

import (
	"context"
	"time"
)

type BookingService interface {
	CheckAvailability(ctx context.Context, fieldID int64, start, end time.Time) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
