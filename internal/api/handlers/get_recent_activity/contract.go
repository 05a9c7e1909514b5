package get_recent_activity

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/reporting/models"
)

type ReportingService interface {
	RecentActivity(ctx context.Context, ownerID, facilityID int64, limit int) (*models.FacilityBookingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
