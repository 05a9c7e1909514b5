package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FieldBookingService/internal/service/bookings/models"
)

// memoryRepo повторяет условия отмены из SQL: совпадение владельца или заявителя и статус не COMPLETED
type memoryRepo struct {
	rows       map[int64]*domain.Booking
	fieldOwner map[int64]int64
	err        error
}

func (m *memoryRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	b, ok := m.rows[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (m *memoryRepo) HasOverlap(_ context.Context, fieldID int64, start, end time.Time) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, b := range m.rows {
		if b.FieldID == fieldID && b.OccupiesField() && b.StartAt.Before(end) && b.EndAt.After(start) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.Booking, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Booking
	for _, b := range m.rows {
		if b.RequesterID != nil && *b.RequesterID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryRepo) CancelByRequester(_ context.Context, bookingID, requesterID int64) (bool, error) {
	b, ok := m.rows[bookingID]
	if !ok || b.RequesterID == nil || *b.RequesterID != requesterID {
		return false, m.err
	}
	return m.cancel(b), m.err
}

func (m *memoryRepo) CancelByOwner(_ context.Context, bookingID, ownerID int64) (bool, error) {
	b, ok := m.rows[bookingID]
	if !ok || m.fieldOwner[b.FieldID] != ownerID {
		return false, m.err
	}
	return m.cancel(b), m.err
}

func (m *memoryRepo) cancel(b *domain.Booking) bool {
	if b.Status == domain.StatusCompleted {
		return false
	}
	if b.CancelledAt == nil {
		now := time.Now().UTC()
		b.CancelledAt = &now
	}
	b.Status = domain.StatusCancelled
	return true
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	userA = int64(1)
	userB = int64(2)
	owner = int64(100)
)

var base = time.Date(2030, 5, 14, 14, 0, 0, 0, time.UTC)

func int64Ptr(v int64) *int64 { return &v }

func newRepo() *memoryRepo {
	return &memoryRepo{
		rows: map[int64]*domain.Booking{
			1: {ID: 1, FieldID: 10, RequesterID: int64Ptr(userA), StartAt: base, EndAt: base.Add(time.Hour), Status: domain.StatusWaiting, Price: decimal.NewFromInt(50)},
			2: {ID: 2, FieldID: 10, RequesterID: int64Ptr(userB), StartAt: base.Add(time.Hour), EndAt: base.Add(2 * time.Hour), Status: domain.StatusWaiting},
			3: {ID: 3, FieldID: 10, StartAt: base.Add(3 * time.Hour), EndAt: base.Add(4 * time.Hour), Status: domain.StatusTechnical},
			4: {ID: 4, FieldID: 10, RequesterID: int64Ptr(userA), StartAt: base.Add(-48 * time.Hour), EndAt: base.Add(-47 * time.Hour), Status: domain.StatusCompleted},
		},
		fieldOwner: map[int64]int64{10: owner},
	}
}

func TestCancelAsRequester(t *testing.T) {
	t.Run("requester cancels own booking", func(t *testing.T) {
		repo := newRepo()
		svc := NewService(repo, nopLogger{})

		ok, err := svc.CancelAsRequester(context.Background(), userA, 1)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, domain.StatusCancelled, repo.rows[1].Status)
	})

	t.Run("other user cannot cancel", func(t *testing.T) {
		repo := newRepo()
		svc := NewService(repo, nopLogger{})

		ok, err := svc.CancelAsRequester(context.Background(), userA, 2)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, domain.StatusWaiting, repo.rows[2].Status)
	})

	t.Run("missing booking looks the same as foreign one", func(t *testing.T) {
		svc := NewService(newRepo(), nopLogger{})

		ok, err := svc.CancelAsRequester(context.Background(), userA, 999)

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("second cancel is a no-op with the same result", func(t *testing.T) {
		repo := newRepo()
		svc := NewService(repo, nopLogger{})

		first, err := svc.CancelAsRequester(context.Background(), userA, 1)
		require.NoError(t, err)
		cancelledAt := *repo.rows[1].CancelledAt

		second, err := svc.CancelAsRequester(context.Background(), userA, 1)
		require.NoError(t, err)

		assert.True(t, first)
		assert.True(t, second)
		assert.Equal(t, cancelledAt, *repo.rows[1].CancelledAt)
	})

	t.Run("completed booking is not cancelled", func(t *testing.T) {
		repo := newRepo()
		svc := NewService(repo, nopLogger{})

		ok, err := svc.CancelAsRequester(context.Background(), userA, 4)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, domain.StatusCompleted, repo.rows[4].Status)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := newRepo()
		repo.err = errors.New("db down")
		svc := NewService(repo, nopLogger{})

		_, err := svc.CancelAsRequester(context.Background(), userA, 1)

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestCancelAsOwner(t *testing.T) {
	t.Run("owner cancels any booking on own field", func(t *testing.T) {
		repo := newRepo()
		svc := NewService(repo, nopLogger{})

		ok, err := svc.CancelAsOwner(context.Background(), owner, 2)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.CancelAsOwner(context.Background(), owner, 3)
		require.NoError(t, err)
		assert.True(t, ok, "owner can lift a technical block")
	})

	t.Run("requester is not the owner", func(t *testing.T) {
		repo := newRepo()
		svc := NewService(repo, nopLogger{})

		ok, err := svc.CancelAsOwner(context.Background(), userA, 1)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, domain.StatusWaiting, repo.rows[1].Status)
	})
}

func TestCheckAvailability(t *testing.T) {
	svc := NewService(newRepo(), nopLogger{})
	ctx := context.Background()

	free, err := svc.CheckAvailability(ctx, 10, base.Add(2*time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.True(t, free, "range touching both neighbours is free")

	free, err = svc.CheckAvailability(ctx, 10, base.Add(30*time.Minute), base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.False(t, free)

	free, err = svc.CheckAvailability(ctx, 10, base.Add(3*time.Hour), base.Add(5*time.Hour))
	require.NoError(t, err)
	assert.False(t, free, "technical block occupies the field")

	_, err = svc.CheckAvailability(ctx, 10, base, base)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.CheckAvailability(ctx, 0, base, base.Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckAvailability_CancelledBookingIsIgnored(t *testing.T) {
	repo := newRepo()
	svc := NewService(repo, nopLogger{})
	ctx := context.Background()

	_, err := svc.CancelAsRequester(ctx, userA, 1)
	require.NoError(t, err)

	free, err := svc.CheckAvailability(ctx, 10, base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, free)
}

func TestGetUserBookings(t *testing.T) {
	svc := NewService(newRepo(), nopLogger{})

	all, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: userA})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 2)

	completed := "COMPLETED"
	filtered, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: userA, Status: &completed})
	require.NoError(t, err)
	require.Len(t, filtered.Bookings, 1)
	assert.Equal(t, int64(4), filtered.Bookings[0].ID)

	unknown := "PAID"
	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: userA, Status: &unknown})
	assert.ErrorIs(t, err, ErrInvalidInput)

	empty, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 555})
	require.NoError(t, err)
	assert.NotNil(t, empty.Bookings)
	assert.Empty(t, empty.Bookings)
}

func TestGetByID(t *testing.T) {
	svc := NewService(newRepo(), nopLogger{})
	ctx := context.Background()

	own, err := svc.GetByID(ctx, 1, userA)
	require.NoError(t, err)
	assert.Equal(t, int64(1), own.ID)

	_, err = svc.GetByID(ctx, 2, userA)
	assert.ErrorIs(t, err, ErrBookingNotFound, "foreign booking is hidden")

	_, err = svc.GetByID(ctx, 3, userA)
	assert.ErrorIs(t, err, ErrBookingNotFound, "technical block has no requester")

	_, err = svc.GetByID(ctx, 999, userA)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	repo := newRepo()
	repo.err = errors.New("db down")
	_, err = NewService(repo, nopLogger{}).GetByID(ctx, 1, userA)
	assert.ErrorIs(t, err, ErrInternal)
}
