package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// TakenSlot занятый интервал для публичной сетки (без данных клиента)
type TakenSlot struct {
	BookingID int64     `json:"bookingId"`
	FieldID   int64     `json:"fieldId"`
	FieldName string    `json:"fieldName"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Status    string    `json:"status"`
}

// TakenSlotsResponse занятые интервалы объекта за день
type TakenSlotsResponse struct {
	FacilityID int64       `json:"facilityId"`
	Date       string      `json:"date"`
	Slots      []TakenSlot `json:"slots"`
}

// Client данные клиента для владельца. Пустые поля, если UserService недоступен.
type Client struct {
	UserID *int64  `json:"userId,omitempty"`
	Name   string  `json:"name,omitempty"`
	Email  string  `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Manual bool    `json:"manual"`
}

// FacilityBooking бронирование в отчётах владельца
type FacilityBooking struct {
	ID        int64           `json:"id"`
	FieldID   int64           `json:"fieldId"`
	FieldName string          `json:"fieldName"`
	StartAt   time.Time       `json:"startAt"`
	EndAt     time.Time       `json:"endAt"`
	Status    string          `json:"status"`
	Price     decimal.Decimal `json:"price"`
	Client    *Client         `json:"client,omitempty"` // nil для технической блокировки
	CreatedAt time.Time       `json:"createdAt"`
}

// FacilityBookingsResponse список бронирований объекта
type FacilityBookingsResponse struct {
	FacilityID int64             `json:"facilityId"`
	Bookings   []FacilityBooking `json:"bookings"`
}

// PopularField самое бронируемое поле
type PopularField struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StatsResponse статистика объекта
type StatsResponse struct {
	FacilityID       int64           `json:"facilityId"`
	Since            string          `json:"since"`
	MonthlyRevenue   decimal.Decimal `json:"monthlyRevenue"`
	TotalBookings    int             `json:"totalBookings"`
	MostPopularField *PopularField   `json:"mostPopularField,omitempty"`
}

// FromDomainTakenSlot конвертирует бронирование в публичный занятый интервал
func FromDomainTakenSlot(b *domain.Booking) TakenSlot {
	return TakenSlot{
		BookingID: b.ID,
		FieldID:   b.FieldID,
		FieldName: b.FieldName,
		StartAt:   b.StartAt,
		EndAt:     b.EndAt,
		Status:    b.Status.String(),
	}
}

// FromDomainStats конвертирует агрегаты
func FromDomainStats(facilityID int64, since time.Time, s domain.FacilityStats) *StatsResponse {
	resp := &StatsResponse{
		FacilityID:     facilityID,
		Since:          since.Format(domain.DateFormat),
		MonthlyRevenue: s.MonthlyRevenue,
		TotalBookings:  s.TotalBookings,
	}
	if s.MostPopularFieldID != nil {
		resp.MostPopularField = &PopularField{ID: *s.MostPopularFieldID, Name: s.MostPopularFieldName}
	}
	return resp
}
