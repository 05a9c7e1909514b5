package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request запрос клиента на бронирование интервала
type Request struct {
	UserID       int64     // ID вызывающего пользователя
	FieldID      int64     // ID поля
	StartAt      time.Time // начало (UTC)
	EndAt        time.Time // конец (UTC), строго позже начала
	ManualClient *string   // имя клиента без аккаунта; только для владельца поля
}

// BlockRequest запрос владельца на техническую блокировку
type BlockRequest struct {
	OwnerID int64
	FieldID int64
	StartAt time.Time
	EndAt   time.Time
}

// Response созданное бронирование
type Response struct {
	ID           int64
	FieldID      int64
	RequesterID  *int64
	StartAt      time.Time
	EndAt        time.Time
	Status       string
	Price        decimal.Decimal
	ManualClient *string
	CreatedAt    time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:           b.ID,
		FieldID:      b.FieldID,
		RequesterID:  b.RequesterID,
		StartAt:      b.StartAt,
		EndAt:        b.EndAt,
		Status:       b.Status.String(),
		Price:        b.Price,
		ManualClient: b.ManualClient,
		CreatedAt:    b.CreatedAt,
	}
}
