package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
)

// UseCase use case для получения сетки слотов поля на день
type UseCase struct {
	bookingRepo  BookingRepository
	fieldRepo    FieldRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	fieldRepo FieldRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		fieldRepo:    fieldRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: field=%d, date=%s", req.FieldID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	dayStart, dayEnd := dayBounds(req.Date)

	// 2. Получаем поле
	field, err := uc.fieldRepo.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("GetAvailableSlots: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	response := &Response{
		Date:                dayStart,
		FieldID:             field.ID,
		SlotDurationMinutes: field.SlotDurationMinutes,
		Slots:               []Slot{},
	}

	// 3. Прошедшие даты и неактивные поля дают пустую сетку
	if isDateInPast(dayStart, now) || !field.IsActive() {
		return response, nil
	}

	// 4. Окно работы поля на этот день
	window, open, err := openingWindow(field, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid working hours for field id=%d: %v", field.ID, err)
		return nil, fmt.Errorf("%w: invalid working hours: %v", ErrInternal, err)
	}
	if !open {
		uc.logger.Info("GetAvailableSlots: field id=%d is closed on %s", field.ID, dayStart.Format(domain.DateFormat))
		return response, nil
	}

	// 5. Генерируем слоты и помечаем занятые
	slots := generateSlots(field, window, now)
	if len(slots) == 0 {
		return response, nil
	}

	bookings, err := uc.bookingRepo.GetByFieldInRange(ctx, field.ID, window.Start, window.End)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for field id=%d: %v", field.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	markTaken(slots, bookings)
	response.Slots = slots

	uc.logger.Info("GetAvailableSlots: generated %d slots for field=%d, date=%s",
		len(slots), field.ID, dayStart.Format(domain.DateFormat))

	return response, nil
}
