package book_slots

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Request выбор нескольких слотов одного поля на одну дату
type Request struct {
	UserID       int64
	FieldID      int64
	Date         time.Time          // дата (UTC), время игнорируется
	SlotStarts   []types.TimeString // начала выбранных слотов, порядок и повторы не важны
	ManualClient *string
}

// RangeResult исход бронирования одного непрерывного интервала
type RangeResult struct {
	StartAt time.Time
	EndAt   time.Time
	Booking *create_booking.Response // nil, если интервал не забронирован
	Err     error                    // ошибка create_booking для этого интервала
}

// Response исходы по интервалам и сумма, показанная клиенту при выборе
type Response struct {
	Results     []RangeResult
	QuotedTotal decimal.Decimal // фиксированная цена за каждый выбранный слот
	Created     int
	Failed      int
}
