package reporting

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// aggregateStats считает выручку, количество и самое бронируемое поле.
// Отменённые бронирования не учитываются. При равенстве побеждает поле,
// встреченное первым: вход упорядочен по (created_at, id).
func aggregateStats(bookings []*domain.Booking) domain.FacilityStats {
	stats := domain.FacilityStats{MonthlyRevenue: decimal.Zero}

	counts := make(map[int64]int)
	names := make(map[int64]string)
	order := make([]int64, 0)

	for _, b := range bookings {
		if !b.OccupiesField() {
			continue
		}

		stats.MonthlyRevenue = stats.MonthlyRevenue.Add(b.Price)
		stats.TotalBookings++

		if _, seen := counts[b.FieldID]; !seen {
			order = append(order, b.FieldID)
			names[b.FieldID] = b.FieldName
		}
		counts[b.FieldID]++
	}

	best := 0
	for _, fieldID := range order {
		if counts[fieldID] > best {
			best = counts[fieldID]
			id := fieldID
			stats.MostPopularFieldID = &id
			stats.MostPopularFieldName = names[fieldID]
		}
	}

	return stats
}
