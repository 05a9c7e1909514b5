package get_facility_bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/reporting/models"
)

type ReportingService interface {
	FacilityBookings(ctx context.Context, ownerID, facilityID int64, date time.Time) (*models.FacilityBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
