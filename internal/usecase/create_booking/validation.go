package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(userID, fieldID int64, start, end time.Time) error {
	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if fieldID <= 0 {
		return fmt.Errorf("%w: fieldID must be positive", ErrInvalidInput)
	}

	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	return nil
}

// validateManualClient имя клиента без аккаунта: непустое и не длиннее лимита
func validateManualClient(name *string) error {
	if name == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return fmt.Errorf("%w: manual client name is empty", ErrInvalidInput)
	}
	if len([]rune(trimmed)) > domain.MaxManualClientLength {
		return fmt.Errorf("%w: manual client name is longer than %d characters", ErrInvalidInput, domain.MaxManualClientLength)
	}

	return nil
}

// validateRange проверяет интервал до обращения к хранилищу
func validateRange(start, end, now time.Time) error {
	if !end.After(start) {
		return ErrInvalidRange
	}

	if start.Before(now) {
		return ErrPastBooking
	}

	return nil
}

// validateOpeningHours проверяет, что интервал лежит в часах работы дня начала.
// Поле без расписания принимает бронирования в любое время.
func validateOpeningHours(field *domain.Field, start, end time.Time) error {
	if field.WorkingHours == nil {
		return nil
	}

	day := start.UTC()
	schedule := field.WorkingHours.ForDay(day)
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return ErrFieldClosed
	}

	openAt, err := types.TimeString(*schedule.OpenTime).On(day)
	if err != nil {
		return fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	closeAt, err := types.TimeString(*schedule.CloseTime).On(day)
	if err != nil {
		return fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	if start.Before(openAt) || end.After(closeAt) {
		return fmt.Errorf("%w: open %s-%s", ErrOutsideOpeningHours, *schedule.OpenTime, *schedule.CloseTime)
	}

	return nil
}

// validateAdvance проверяет ограничение maxDaysInAdvance (0 - без ограничения)
func validateAdvance(field *domain.Field, start, now time.Time) error {
	if !field.HasAdvanceBookingLimit() {
		return nil
	}

	maxDate := dateOnly(now).AddDate(0, 0, field.MaxDaysInAdvance)
	if dateOnly(start).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, field.MaxDaysInAdvance)
	}

	return nil
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
