package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/pricing"
)

// UseCase use case создания бронирования и технической блокировки
type UseCase struct {
	bookingRepo  BookingRepository
	fieldRepo    FieldRepository
	txManager    TransactionManager
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	fieldRepo FieldRepository,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		fieldRepo:    fieldRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute создает клиентское бронирование со статусом WAITING.
// Цена считается по длительности интервала и фиксируется в момент создания.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, field=%d, start=%s, end=%s",
		req.UserID, req.FieldID, req.StartAt.Format("2006-01-02T15:04Z07:00"), req.EndAt.Format("2006-01-02T15:04Z07:00"))

	// 1. Проверки, не требующие хранилища
	if err := validateRequest(req.UserID, req.FieldID, req.StartAt, req.EndAt); err != nil {
		return nil, uc.reject(domain.KindClient, "CreateBooking", err)
	}
	if err := validateManualClient(req.ManualClient); err != nil {
		return nil, uc.reject(domain.KindClient, "CreateBooking", err)
	}

	now := uc.timeProvider.Now()
	if err := validateRange(req.StartAt, req.EndAt, now); err != nil {
		return nil, uc.reject(domain.KindClient, "CreateBooking", err)
	}

	// 2. Справочные данные поля и политика бронирования
	field, err := uc.getField(ctx, "CreateBooking", req.FieldID)
	if err != nil {
		return nil, err
	}

	if !field.IsActive() {
		return nil, uc.reject(domain.KindClient, "CreateBooking", fmt.Errorf("%w: status=%s", ErrFieldInactive, field.Status))
	}
	if req.ManualClient != nil && field.OwnerID != req.UserID {
		return nil, uc.reject(domain.KindClient, "CreateBooking",
			fmt.Errorf("%w: manual client booking on field=%d by non-owner user=%d", ErrAccessDenied, field.ID, req.UserID))
	}
	if err := validateOpeningHours(field, req.StartAt, req.EndAt); err != nil {
		return nil, uc.reject(domain.KindClient, "CreateBooking", err)
	}
	if err := validateAdvance(field, req.StartAt, now); err != nil {
		return nil, uc.reject(domain.KindClient, "CreateBooking", err)
	}

	// 3. Атомарная проверка и вставка
	userID := req.UserID
	booking := &domain.Booking{
		FieldID:      field.ID,
		RequesterID:  &userID,
		CreatedBy:    req.UserID,
		StartAt:      req.StartAt.UTC(),
		EndAt:        req.EndAt.UTC(),
		Status:       domain.StatusWaiting,
		Price:        pricing.ForDuration(field.PricePerSlot, field.SlotDurationMinutes, req.StartAt, req.EndAt),
		ManualClient: trimmed(req.ManualClient),
	}

	created, err := uc.reserve(ctx, domain.KindClient, booking)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, field=%d, price=%s",
		created.ID, created.FieldID, created.Price.StringFixed(2))
	return fromDomain(created), nil
}

// Block создает техническую блокировку: та же атомарная проверка, статус TECHNICAL, цена 0.
// Часы работы и ограничение по дням не проверяются, но блокировать может только владелец поля.
func (uc *UseCase) Block(ctx context.Context, req *BlockRequest) (*Response, error) {
	uc.logger.Info("BlockSlot: owner=%d, field=%d, start=%s, end=%s",
		req.OwnerID, req.FieldID, req.StartAt.Format("2006-01-02T15:04Z07:00"), req.EndAt.Format("2006-01-02T15:04Z07:00"))

	if err := validateRequest(req.OwnerID, req.FieldID, req.StartAt, req.EndAt); err != nil {
		return nil, uc.reject(domain.KindTechnical, "BlockSlot", err)
	}
	if err := validateRange(req.StartAt, req.EndAt, uc.timeProvider.Now()); err != nil {
		return nil, uc.reject(domain.KindTechnical, "BlockSlot", err)
	}

	field, err := uc.getField(ctx, "BlockSlot", req.FieldID)
	if err != nil {
		return nil, err
	}

	if field.OwnerID != req.OwnerID {
		return nil, uc.reject(domain.KindTechnical, "BlockSlot",
			fmt.Errorf("%w: field=%d is not owned by user=%d", ErrAccessDenied, field.ID, req.OwnerID))
	}

	booking := &domain.Booking{
		FieldID:   field.ID,
		CreatedBy: req.OwnerID,
		StartAt:   req.StartAt.UTC(),
		EndAt:     req.EndAt.UTC(),
		Status:    domain.StatusTechnical,
		Price:     decimal.Zero,
	}

	created, err := uc.reserve(ctx, domain.KindTechnical, booking)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BlockSlot: successfully created block id=%d, field=%d", created.ID, created.FieldID)
	return fromDomain(created), nil
}

// reserve атомарно проверяет интервал и вставляет бронирование.
// Внутри одной транзакции: advisory-блокировка поля, проверка пересечения, вставка.
// Exclusion constraint в БД страхует вставку; его нарушение отдаётся как тот же ErrSlotNotAvailable.
func (uc *UseCase) reserve(ctx context.Context, kind string, booking *domain.Booking) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.LockField(txCtx, booking.FieldID); err != nil {
			return fmt.Errorf("%w: failed to lock field: %v", ErrInternal, err)
		}

		overlap, err := uc.bookingRepo.HasOverlap(txCtx, booking.FieldID, booking.StartAt, booking.EndAt)
		if err != nil {
			return fmt.Errorf("%w: failed to check availability: %v", ErrInternal, err)
		}
		if overlap {
			return ErrSlotNotAvailable
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				return ErrSlotNotAvailable
			case errors.Is(err, bookingRepo.ErrInvalidRange):
				return ErrInvalidRange
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	switch {
	case err == nil:
		uc.metrics.ObserveBooking(metrics.OutcomeCreated, kind)
		return result, nil
	case errors.Is(err, ErrSlotNotAvailable):
		uc.logger.Warn("Reserve: slot not available, field=%d, kind=%s", booking.FieldID, kind)
		uc.metrics.ObserveBooking(metrics.OutcomeConflict, kind)
		return nil, err
	case errors.Is(err, ErrInvalidRange):
		return nil, uc.reject(kind, "Reserve", err)
	default:
		uc.logger.Error("Reserve: failed for field=%d, kind=%s: %v", booking.FieldID, kind, err)
		if !errors.Is(err, ErrInternal) {
			err = fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}
}

func (uc *UseCase) getField(ctx context.Context, op string, fieldID int64) (*domain.Field, error) {
	field, err := uc.fieldRepo.GetByID(ctx, fieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("%s: field id=%d not found", op, fieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("%s: failed to get field id=%d: %v", op, fieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}
	return field, nil
}

// reject логирует отказ по бизнес-правилу и учитывает его в метриках
func (uc *UseCase) reject(kind, op string, err error) error {
	uc.logger.Warn("%s: rejected: %v", op, err)
	uc.metrics.ObserveBooking(metrics.OutcomeRejected, kind)
	return err
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
