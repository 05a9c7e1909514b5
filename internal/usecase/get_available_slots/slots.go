package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/timerange"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// openingWindow возвращает интервал работы поля в этот день.
// ok=false, если поле закрыто. Поле без расписания открыто весь день.
func openingWindow(field *domain.Field, dayStart, dayEnd time.Time) (timerange.Range, bool, error) {
	if field.WorkingHours == nil {
		return timerange.New(dayStart, dayEnd), true, nil
	}

	schedule := field.WorkingHours.ForDay(dayStart)
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return timerange.Range{}, false, nil
	}

	openAt, err := types.TimeString(*schedule.OpenTime).On(dayStart)
	if err != nil {
		return timerange.Range{}, false, fmt.Errorf("open time: %w", err)
	}
	closeAt, err := types.TimeString(*schedule.CloseTime).On(dayStart)
	if err != nil {
		return timerange.Range{}, false, fmt.Errorf("close time: %w", err)
	}

	window := timerange.New(openAt, closeAt)
	return window, window.IsValid(), nil
}

// generateSlots режет окно работы на слоты фиксированной длины.
// Хвост короче слота отбрасывается; слоты, которые уже начались, не попадают в сетку.
func generateSlots(field *domain.Field, window timerange.Range, now time.Time) []Slot {
	step := field.SlotDuration()
	if step <= 0 {
		return []Slot{}
	}

	slots := make([]Slot, 0)
	for start := window.Start; !start.Add(step).After(window.End); start = start.Add(step) {
		if start.Before(now) {
			continue
		}

		end := start.Add(step)
		slots = append(slots, Slot{
			StartTime: types.NewTimeString(start),
			EndTime:   types.NewTimeString(end),
			StartAt:   start,
			EndAt:     end,
			Available: true,
			Price:     field.PricePerSlot,
		})
	}

	return slots
}

// markTaken помечает занятые слоты.
// Слот занят, если пересекается с любым неотменённым бронированием;
// бронирование, которое заканчивается ровно в начале слота, его не занимает.
func markTaken(slots []Slot, bookings []*domain.Booking) {
	for i := range slots {
		for _, booking := range bookings {
			if !booking.OccupiesField() {
				continue
			}
			if timerange.Overlaps(slots[i].StartAt, slots[i].EndAt, booking.StartAt, booking.EndAt) {
				slots[i].Available = false
				break
			}
		}
	}
}
