package book_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/pricing"
	"github.com/m04kA/SMC-FieldBookingService/pkg/timerange"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// UseCase бронирование нескольких выбранных слотов.
// Выбор сворачивается в минимальный набор непрерывных интервалов, каждый бронируется отдельно.
type UseCase struct {
	creator   BookingCreator
	fieldRepo FieldRepository
	maxSlots  int
	logger    Logger
}

// NewUseCase создает новый экземпляр use case. maxSlots <= 0 - значение по умолчанию
func NewUseCase(creator BookingCreator, fieldRepo FieldRepository, maxSlots int, logger Logger) *UseCase {
	if maxSlots <= 0 {
		maxSlots = domain.DefaultMaxSlotsPerBatch
	}
	return &UseCase{
		creator:   creator,
		fieldRepo: fieldRepo,
		maxSlots:  maxSlots,
		logger:    logger,
	}
}

// Execute бронирует выбранные слоты.
// Конфликт на одном интервале не прерывает остальные: исход возвращается по каждому интервалу.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlots: user=%d, field=%d, date=%s, slots=%d",
		req.UserID, req.FieldID, req.Date.Format(domain.DateFormat), len(req.SlotStarts))

	if err := uc.validate(req); err != nil {
		uc.logger.Warn("BookSlots: validation failed: %v", err)
		return nil, err
	}

	field, err := uc.fieldRepo.GetByID(ctx, req.FieldID)
	if err != nil {
		if errors.Is(err, fieldRepo.ErrFieldNotFound) {
			uc.logger.Warn("BookSlots: field id=%d not found", req.FieldID)
			return nil, ErrFieldNotFound
		}
		uc.logger.Error("BookSlots: failed to get field id=%d: %v", req.FieldID, err)
		return nil, fmt.Errorf("%w: failed to get field: %v", ErrInternal, err)
	}

	starts, err := slotInstants(req.Date, req.SlotStarts)
	if err != nil {
		uc.logger.Warn("BookSlots: invalid slot start: %v", err)
		return nil, err
	}

	ranges := timerange.MergeContiguous(starts, field.SlotDuration())
	if len(ranges) == 0 {
		return nil, fmt.Errorf("%w: field slot duration is not set", ErrInternal)
	}

	response := &Response{
		Results:     make([]RangeResult, 0, len(ranges)),
		QuotedTotal: quote(field, starts),
	}

	for _, r := range ranges {
		result := RangeResult{StartAt: r.Start, EndAt: r.End}

		booking, err := uc.creator.Execute(ctx, &create_booking.Request{
			UserID:       req.UserID,
			FieldID:      field.ID,
			StartAt:      r.Start,
			EndAt:        r.End,
			ManualClient: req.ManualClient,
		})
		if err != nil {
			result.Err = err
			response.Failed++
		} else {
			result.Booking = booking
			response.Created++
		}

		response.Results = append(response.Results, result)
	}

	uc.logger.Info("BookSlots: field=%d, ranges=%d, created=%d, failed=%d, quoted=%s",
		field.ID, len(ranges), response.Created, response.Failed, response.QuotedTotal.StringFixed(2))

	return response, nil
}

func (uc *UseCase) validate(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.FieldID <= 0 {
		return fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if len(req.SlotStarts) == 0 {
		return fmt.Errorf("%w: no slots selected", ErrInvalidInput)
	}
	if len(req.SlotStarts) > uc.maxSlots {
		return fmt.Errorf("%w: %d selected, at most %d allowed", ErrTooManySlots, len(req.SlotStarts), uc.maxSlots)
	}
	return nil
}

// slotInstants переводит "HH:MM" в моменты времени выбранной даты (UTC)
func slotInstants(date time.Time, slotStarts []types.TimeString) ([]time.Time, error) {
	day := date.UTC()
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	starts := make([]time.Time, 0, len(slotStarts))
	for _, s := range slotStarts {
		at, err := s.On(day)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		starts = append(starts, at)
	}
	return starts, nil
}

// quote фиксированная цена за каждый выбранный слот; повторно выбранный слот не считается дважды
func quote(field *domain.Field, starts []time.Time) decimal.Decimal {
	seen := make(map[time.Time]struct{}, len(starts))
	slots := make([]pricing.Slot, 0, len(starts))
	for _, s := range starts {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		slots = append(slots, pricing.Slot{FieldID: field.ID, Start: s})
	}

	return pricing.ForSlotSet(slots, func(fieldID int64) (decimal.Decimal, bool) {
		if fieldID != field.ID {
			return decimal.Zero, false
		}
		return field.PricePerSlot, true
	})
}
