package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/reporting/models"
)

// Service отчёты по объекту поверх хранилища бронирований
type Service struct {
	bookingRepo  BookingRepository
	facilityRepo FacilityRepository
	userClient   UserServiceClient
	txManager    TransactionManager
	logger       Logger

	defaultRecentLimit int
	maxRecentLimit     int
}

// NewService создает новый экземпляр сервиса отчётов
func NewService(
	bookingRepo BookingRepository,
	facilityRepo FacilityRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	defaultRecentLimit int,
	maxRecentLimit int,
	logger Logger,
) *Service {
	if defaultRecentLimit <= 0 {
		defaultRecentLimit = domain.DefaultRecentActivityLimit
	}
	if maxRecentLimit <= 0 {
		maxRecentLimit = domain.MaxRecentActivityLimit
	}
	return &Service{
		bookingRepo:        bookingRepo,
		facilityRepo:       facilityRepo,
		userClient:         userClient,
		txManager:          txManager,
		logger:             logger,
		defaultRecentLimit: defaultRecentLimit,
		maxRecentLimit:     maxRecentLimit,
	}
}

// TakenSlots неотменённые бронирования всех полей объекта, пересекающие календарный день (UTC).
// Публичный отчёт: данных клиента не содержит.
func (s *Service) TakenSlots(ctx context.Context, facilityID int64, date time.Time) (*models.TakenSlotsResponse, error) {
	s.logger.Info("TakenSlots: facility=%d, date=%s", facilityID, date.Format(domain.DateFormat))

	if facilityID <= 0 || date.IsZero() {
		return nil, fmt.Errorf("%w: facilityID and date are required", ErrInvalidInput)
	}

	from, to := dayBounds(date)
	bookings, err := s.bookingRepo.GetByFacilityInRange(ctx, facilityID, from, to)
	if err != nil {
		s.logger.Error("TakenSlots: repository error for facility=%d: %v", facilityID, err)
		return nil, fmt.Errorf("%w: TakenSlots - repository error: %v", ErrInternal, err)
	}

	resp := &models.TakenSlotsResponse{
		FacilityID: facilityID,
		Date:       from.Format(domain.DateFormat),
		Slots:      make([]models.TakenSlot, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Slots = append(resp.Slots, models.FromDomainTakenSlot(b))
	}

	return resp, nil
}

// FacilityBookings то же, что TakenSlots, но для владельца и с данными клиента
func (s *Service) FacilityBookings(ctx context.Context, ownerID, facilityID int64, date time.Time) (*models.FacilityBookingsResponse, error) {
	s.logger.Info("FacilityBookings: owner=%d, facility=%d, date=%s", ownerID, facilityID, date.Format(domain.DateFormat))

	if facilityID <= 0 || date.IsZero() {
		return nil, fmt.Errorf("%w: facilityID and date are required", ErrInvalidInput)
	}

	from, to := dayBounds(date)

	var bookings []*domain.Booking
	err := s.ownerRead(ctx, "FacilityBookings", ownerID, facilityID, func(txCtx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.GetByFacilityInRange(txCtx, facilityID, from, to)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &models.FacilityBookingsResponse{
		FacilityID: facilityID,
		Bookings:   s.enrich(ctx, bookings),
	}, nil
}

// RecentActivity последние созданные (а не ближайшие по времени) неотменённые бронирования объекта
func (s *Service) RecentActivity(ctx context.Context, ownerID, facilityID int64, limit int) (*models.FacilityBookingsResponse, error) {
	limit = s.normalizeLimit(limit)
	s.logger.Info("RecentActivity: owner=%d, facility=%d, limit=%d", ownerID, facilityID, limit)

	if facilityID <= 0 {
		return nil, fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}

	var bookings []*domain.Booking
	err := s.ownerRead(ctx, "RecentActivity", ownerID, facilityID, func(txCtx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.GetRecentByFacility(txCtx, facilityID, limit)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &models.FacilityBookingsResponse{
		FacilityID: facilityID,
		Bookings:   s.enrich(ctx, bookings),
	}, nil
}

// FacilityStats выручка, количество и самое бронируемое поле по бронированиям с началом не раньше monthStart
func (s *Service) FacilityStats(ctx context.Context, ownerID, facilityID int64, monthStart time.Time) (*models.StatsResponse, error) {
	s.logger.Info("FacilityStats: owner=%d, facility=%d, since=%s", ownerID, facilityID, monthStart.Format(domain.DateFormat))

	if facilityID <= 0 || monthStart.IsZero() {
		return nil, fmt.Errorf("%w: facilityID and month are required", ErrInvalidInput)
	}

	var bookings []*domain.Booking
	err := s.ownerRead(ctx, "FacilityStats", ownerID, facilityID, func(txCtx context.Context) error {
		var err error
		bookings, err = s.bookingRepo.GetByFacilitySince(txCtx, facilityID, monthStart.UTC())
		return err
	})
	if err != nil {
		return nil, err
	}

	stats := aggregateStats(bookings)
	s.logger.Info("FacilityStats: facility=%d, revenue=%s, total=%d",
		facilityID, stats.MonthlyRevenue.StringFixed(2), stats.TotalBookings)

	return models.FromDomainStats(facilityID, monthStart.UTC(), stats), nil
}

// ownerRead проверяет владение объектом и выполняет чтение в одном снимке (read only транзакция)
func (s *Service) ownerRead(ctx context.Context, op string, ownerID, facilityID int64, read func(ctx context.Context) error) error {
	var readErr error

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		actualOwner, err := s.facilityRepo.GetFacilityOwnerID(txCtx, facilityID)
		if err != nil {
			if errors.Is(err, fieldRepo.ErrFacilityNotFound) {
				s.logger.Warn("%s: facility id=%d not found", op, facilityID)
				return ErrFacilityNotFound
			}
			return fmt.Errorf("%w: %s - failed to get facility owner: %v", ErrInternal, op, err)
		}

		if actualOwner != ownerID {
			s.logger.Warn("%s: user=%d is not the owner of facility=%d", op, ownerID, facilityID)
			return ErrAccessDenied
		}

		if err := read(txCtx); err != nil {
			readErr = err
			return err
		}
		return nil
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrFacilityNotFound), errors.Is(err, ErrAccessDenied):
		return err
	case readErr != nil:
		s.logger.Error("%s: repository error for facility=%d: %v", op, facilityID, readErr)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, readErr)
	default:
		s.logger.Error("%s: failed for facility=%d: %v", op, facilityID, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %s - %v", ErrInternal, op, err)
		}
		return err
	}
}

// enrich добавляет данные клиента: имя без аккаунта либо профиль из UserService.
// Недоступность UserService не ломает отчёт, данные клиента остаются пустыми.
func (s *Service) enrich(ctx context.Context, bookings []*domain.Booking) []models.FacilityBooking {
	users := make(map[int64]*userservice.User)
	result := make([]models.FacilityBooking, 0, len(bookings))

	for _, b := range bookings {
		item := models.FacilityBooking{
			ID:        b.ID,
			FieldID:   b.FieldID,
			FieldName: b.FieldName,
			StartAt:   b.StartAt,
			EndAt:     b.EndAt,
			Status:    b.Status.String(),
			Price:     b.Price,
			CreatedAt: b.CreatedAt,
		}

		switch {
		case b.ManualClient != nil:
			item.Client = &models.Client{UserID: b.RequesterID, Name: *b.ManualClient, Manual: true}
		case b.RequesterID != nil:
			client := &models.Client{UserID: b.RequesterID}
			if user := s.lookupUser(ctx, users, *b.RequesterID); user != nil {
				client.Name = user.Name
				client.Email = user.Email
				client.Phone = user.Phone
			}
			item.Client = client
		}

		result = append(result, item)
	}

	return result
}

func (s *Service) lookupUser(ctx context.Context, cache map[int64]*userservice.User, userID int64) *userservice.User {
	if user, ok := cache[userID]; ok {
		return user
	}

	user, err := s.userClient.GetUserWithGracefulDegradation(ctx, userID)
	if err != nil {
		if !errors.Is(err, userservice.ErrUserNotFound) && !errors.Is(err, userservice.ErrServiceDegraded) {
			s.logger.Error("enrich: unexpected user service error for user_id=%d: %v", userID, err)
		}
		user = nil
	}

	cache[userID] = user
	return user
}

func (s *Service) normalizeLimit(limit int) int {
	if limit <= 0 {
		return s.defaultRecentLimit
	}
	if limit > s.maxRecentLimit {
		return s.maxRecentLimit
	}
	return limit
}

// dayBounds полуоткрытые границы календарного дня в UTC
func dayBounds(date time.Time) (time.Time, time.Time) {
	date = date.UTC()
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
