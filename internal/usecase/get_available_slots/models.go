package get_available_slots

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Request модель запроса на получение сетки слотов
type Request struct {
	FieldID int64     // ID поля
	Date    time.Time // Дата (UTC, время игнорируется)
}

// Response сетка слотов поля на день
type Response struct {
	Date                time.Time
	FieldID             int64
	SlotDurationMinutes int
	Slots               []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	EndTime   types.TimeString // Время окончания слота
	StartAt   time.Time        // Начало слота (UTC)
	EndAt     time.Time        // Конец слота (UTC)
	Available bool             // false, если слот пересекается с неотменённым бронированием
	Price     decimal.Decimal  // Цена слота
}
