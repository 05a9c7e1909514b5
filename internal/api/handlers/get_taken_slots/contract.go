package get_taken_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/reporting/models"
)

type ReportingService interface {
	TakenSlots(ctx context.Context, facilityID int64, date time.Time) (*models.TakenSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
