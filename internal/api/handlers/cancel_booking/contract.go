package cancel_booking

import (
	"context"
)

type BookingService interface {
	CancelAsRequester(ctx context.Context, requesterID, bookingID int64) (bool, error)
	CancelAsOwner(ctx context.Context, ownerID, bookingID int64) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
