package create_booking

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
)

// memoryBookings хранилище в памяти с той же семантикой пересечения, что и SQL
type memoryBookings struct {
	mu        sync.Mutex
	rows      []*domain.Booking
	nextID    int64
	locks     int
	creates   int
	createErr error
}

func (m *memoryBookings) LockField(context.Context, int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks++
	return nil
}

func (m *memoryBookings) HasOverlap(_ context.Context, fieldID int64, start, end time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.FieldID == fieldID && b.OccupiesField() && b.StartAt.Before(end) && b.EndAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.nextID++
	stored := *b
	stored.ID = m.nextID
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	m.rows = append(m.rows, &stored)
	copied := stored
	return &copied, nil
}

func (m *memoryBookings) cancel(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.rows {
		if b.ID == id {
			b.Status = domain.StatusCancelled
		}
	}
}

func (m *memoryBookings) occupying(fieldID int64) []domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Booking
	for _, b := range m.rows {
		if b.FieldID == fieldID && b.OccupiesField() {
			out = append(out, *b)
		}
	}
	return out
}

func (m *memoryBookings) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// serialTxManager выполняет транзакции по одной, как advisory-блокировка поля
type serialTxManager struct {
	mu sync.Mutex
}

func (s *serialTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

type memoryFields map[int64]*domain.Field

func (m memoryFields) GetByID(_ context.Context, id int64) (*domain.Field, error) {
	f, ok := m[id]
	if !ok {
		return nil, fieldRepo.ErrFieldNotFound
	}
	copied := *f
	return &copied, nil
}

type outcomeRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (r *outcomeRecorder) ObserveBooking(outcome, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string]int)
	}
	r.outcomes[outcome+"/"+kind]++
}

func (r *outcomeRecorder) get(outcome, kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[outcome+"/"+kind]
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

const (
	testFieldID = int64(10)
	testOwnerID = int64(77)
	testUserID  = int64(501)
)

// понедельник 2030-05-13 08:00 UTC
var testNow = time.Date(2030, 5, 13, 8, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func testField() *domain.Field {
	return &domain.Field{
		ID:                  testFieldID,
		FacilityID:          1,
		OwnerID:             testOwnerID,
		Name:                "Поле 1",
		PricePerSlot:        decimal.NewFromInt(50),
		SlotDurationMinutes: 60,
		Status:              domain.FieldStatusActive,
	}
}

type fixture struct {
	uc       *UseCase
	bookings *memoryBookings
	fields   memoryFields
	metrics  *outcomeRecorder
}

func newFixture(fields ...*domain.Field) *fixture {
	if len(fields) == 0 {
		fields = []*domain.Field{testField()}
	}
	fx := &fixture{
		bookings: &memoryBookings{},
		fields:   memoryFields{},
		metrics:  &outcomeRecorder{},
	}
	for _, f := range fields {
		fx.fields[f.ID] = f
	}
	fx.uc = NewUseCase(fx.bookings, fx.fields, &serialTxManager{}, fx.metrics, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
	return fx
}

// at время 2030-05-14 (вторник) в UTC
func at(hour, minute int) time.Time {
	return time.Date(2030, 5, 14, hour, minute, 0, 0, time.UTC)
}
