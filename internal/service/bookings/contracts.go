package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	HasOverlap(ctx context.Context, fieldID int64, start, end time.Time) (bool, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error)
	CancelByRequester(ctx context.Context, bookingID, requesterID int64) (bool, error)
	CancelByOwner(ctx context.Context, bookingID, ownerID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
