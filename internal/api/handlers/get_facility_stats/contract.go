package get_facility_stats

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/service/reporting/models"
)

type ReportingService interface {
	FacilityStats(ctx context.Context, ownerID, facilityID int64, monthStart time.Time) (*models.StatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
