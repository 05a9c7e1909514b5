package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FieldStatus жизненный цикл поля в каталоге
type FieldStatus string

const (
	FieldStatusActive      FieldStatus = "active"
	FieldStatusInactive    FieldStatus = "inactive"
	FieldStatusMaintenance FieldStatus = "maintenance"
)

// Field справочные данные поля (только чтение, владеет ими каталог)
type Field struct {
	ID                  int64
	FacilityID          int64
	OwnerID             int64 // владелец объекта, к которому относится поле
	Name                string
	PricePerSlot        decimal.Decimal
	SlotDurationMinutes int
	WorkingHours        *WorkingHours // nil - расписание не задано
	MaxDaysInAdvance    int           // 0 = без ограничения
	CancellationHours   int           // метаданные политики, сервером не применяются
	Status              FieldStatus
}

// IsActive true, если поле принимает клиентские бронирования
func (f *Field) IsActive() bool {
	return f.Status == FieldStatusActive
}

// SlotDuration длительность слота
func (f *Field) SlotDuration() time.Duration {
	return time.Duration(f.SlotDurationMinutes) * time.Minute
}

// HasAdvanceBookingLimit true, если есть ограничение на бронирование заранее
func (f *Field) HasAdvanceBookingLimit() bool {
	return f.MaxDaysInAdvance > 0
}

// DaySchedule расписание на день недели
type DaySchedule struct {
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "HH:MM"
	CloseTime *string `json:"closeTime,omitempty"` // "HH:MM"
}

// WorkingHours расписание по дням недели (хранится в JSONB)
type WorkingHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// ForDay возвращает расписание на день недели даты
func (w *WorkingHours) ForDay(date time.Time) DaySchedule {
	switch date.Weekday() {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}
