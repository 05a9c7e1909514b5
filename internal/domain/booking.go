package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/pkg/timerange"
)

// ErrUnknownBookingStatus статус не входит в перечисление
var ErrUnknownBookingStatus = errors.New("domain: unknown booking status")

// BookingStatus статус бронирования. Значения вне перечисления не принимаются ни из БД, ни из API.
type BookingStatus string

const (
	// StatusWaiting клиентское бронирование подтверждено и ожидает начала
	StatusWaiting BookingStatus = "WAITING"
	// StatusActive зарезервирован; ни одна операция сервиса в него не переводит
	StatusActive BookingStatus = "ACTIVE"
	// StatusCancelled терминальный статус, строка остаётся для истории и отчётов
	StatusCancelled BookingStatus = "CANCELLED"
	// StatusTechnical техническая блокировка владельцем, не меняется
	StatusTechnical BookingStatus = "TECHNICAL"
	// StatusCompleted зарезервирован; появляется только через миграции данных
	StatusCompleted BookingStatus = "COMPLETED"
)

// AllStatuses все допустимые статусы
var AllStatuses = []BookingStatus{
	StatusWaiting,
	StatusActive,
	StatusCancelled,
	StatusTechnical,
	StatusCompleted,
}

// ParseBookingStatus проверяет строку и возвращает статус
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBookingStatus, s)
	}
	return status, nil
}

func (s BookingStatus) IsValid() bool {
	for _, valid := range AllStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

func (s BookingStatus) String() string {
	return string(s)
}

// Scan читает статус из БД с валидацией
func (s *BookingStatus) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrUnknownBookingStatus, src)
	}

	parsed, err := ParseBookingStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value записывает статус в БД, отказываясь от неизвестных значений
func (s BookingStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBookingStatus, string(s))
	}
	return string(s), nil
}

// Booking бронирование поля на полуоткрытый интервал [StartAt, EndAt) в UTC
type Booking struct {
	ID           int64
	FieldID      int64
	RequesterID  *int64 // nil для технической блокировки
	CreatedBy    int64  // кто создал запись (клиент или владелец)
	StartAt      time.Time
	EndAt        time.Time
	Status       BookingStatus
	Price        decimal.Decimal // фиксируется при создании
	ManualClient *string         // имя клиента, если владелец бронирует за него

	// Денормализованные данные для отчётов (заполняются только в выборках по объекту)
	FieldName string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Range интервал бронирования
func (b *Booking) Range() timerange.Range {
	return timerange.New(b.StartAt, b.EndAt)
}

// IsCancelled true для отменённого бронирования
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// OccupiesField true, если бронирование занимает поле (любой статус, кроме CANCELLED)
func (b *Booking) OccupiesField() bool {
	return b.Status != StatusCancelled
}

// IsTechnical true для блокировки владельцем
func (b *Booking) IsTechnical() bool {
	return b.Status == StatusTechnical
}

// FacilityStats агрегаты по объекту за период
type FacilityStats struct {
	MonthlyRevenue       decimal.Decimal
	TotalBookings        int
	MostPopularFieldID   *int64 // nil, если бронирований нет
	MostPopularFieldName string
}
