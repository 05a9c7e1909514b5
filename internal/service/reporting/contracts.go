package reporting

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований (только чтение)
type BookingRepository interface {
	GetByFacilityInRange(ctx context.Context, facilityID int64, from, to time.Time) ([]*domain.Booking, error)
	GetRecentByFacility(ctx context.Context, facilityID int64, limit int) ([]*domain.Booking, error)
	GetByFacilitySince(ctx context.Context, facilityID int64, since time.Time) ([]*domain.Booking, error)
}

// FacilityRepository интерфейс справочника объектов
type FacilityRepository interface {
	GetFacilityOwnerID(ctx context.Context, facilityID int64) (int64, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
