// Package pricing считает стоимость бронирования.
//
// Есть два независимых способа расчёта, и они намеренно не сводятся друг к другу:
// ForDuration - по длительности интервала (одиночное бронирование start/end),
// ForSlotSet - фиксированная цена за каждый выбранный слот (выбор нескольких слотов в сетке).
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Slot выбранный слот конкретного поля
type Slot struct {
	FieldID int64
	Start   time.Time
}

// UnitPriceLookup возвращает цену слота поля; ok=false, если поле неизвестно
type UnitPriceLookup func(fieldID int64) (price decimal.Decimal, ok bool)

// SlotsCount количество слотов для интервала: ceil(minutes / slotMinutes), но не меньше одного.
// Кратность длительности слоту не проверяется - это забота вызывающего.
func SlotsCount(slotDurationMinutes int, start, end time.Time) int64 {
	if slotDurationMinutes <= 0 {
		return 1
	}

	minutes := int64(end.Sub(start) / time.Minute)
	slot := int64(slotDurationMinutes)

	slots := (minutes + slot - 1) / slot
	if slots < 1 {
		slots = 1
	}
	return slots
}

// ForDuration цена интервала: unitPrice * SlotsCount
//
// 50, 60m, 13:00-14:30 → 100; 50, 60m, 13:00-13:20 → 50
func ForDuration(unitPrice decimal.Decimal, slotDurationMinutes int, start, end time.Time) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(SlotsCount(slotDurationMinutes, start, end)))
}

// ForSlotSet сумма unitPrice по каждому выбранному слоту.
// Слоты неизвестных полей пропускаются.
func ForSlotSet(slots []Slot, lookup UnitPriceLookup) decimal.Decimal {
	total := decimal.Zero
	for _, s := range slots {
		price, ok := lookup(s.FieldID)
		if !ok {
			continue
		}
		total = total.Add(price)
	}
	return total
}
