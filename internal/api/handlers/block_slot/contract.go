package block_slot

import (
	"context"

	createBooking "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
)

type BlockSlotUseCase interface {
	Block(ctx context.Context, req *createBooking.BlockRequest) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
