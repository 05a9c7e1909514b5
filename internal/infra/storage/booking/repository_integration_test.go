package booking

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
)

const testOwnerID = 900001

// setupDB поднимает схему в БД из BOOKING_TEST_DSN и создаёт объект с одним полем
func setupDB(t *testing.T) (*dbmetrics.DB, int64, int64) {
	t.Helper()

	dsn := os.Getenv("BOOKING_TEST_DSN")
	if dsn == "" {
		t.Skip("BOOKING_TEST_DSN is not set")
	}

	raw, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })

	schema, err := os.ReadFile("../../../../migrations/0001_init.sql")
	require.NoError(t, err)
	_, err = raw.Exec(string(schema))
	require.NoError(t, err)

	var facilityID, fieldID int64
	require.NoError(t, raw.QueryRow(
		`INSERT INTO facilities (owner_id, name) VALUES ($1, 'Arena') RETURNING id`, testOwnerID,
	).Scan(&facilityID))
	require.NoError(t, raw.QueryRow(
		`INSERT INTO fields (facility_id, name, price_per_slot, slot_duration_minutes) VALUES ($1, 'Court 1', 50, 60) RETURNING id`,
		facilityID,
	).Scan(&fieldID))

	t.Cleanup(func() {
		_, _ = raw.Exec(`DELETE FROM facilities WHERE id = $1`, facilityID)
	})

	return dbmetrics.Wrap(raw, nil), facilityID, fieldID
}

func futureSlot(hour int) (time.Time, time.Time) {
	day := time.Now().UTC().AddDate(0, 0, 3).Truncate(24 * time.Hour)
	start := day.Add(time.Duration(hour) * time.Hour)
	return start, start.Add(time.Hour)
}

func newBooking(fieldID int64, userID int64, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		FieldID:     fieldID,
		RequesterID: &userID,
		CreatedBy:   userID,
		StartAt:     start,
		EndAt:       end,
		Status:      domain.StatusWaiting,
		Price:       decimal.NewFromInt(50),
	}
}

func TestRepository_ExclusionConstraintRejectsOverlap(t *testing.T) {
	db, _, fieldID := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	start, end := futureSlot(14)
	_, err := repo.Create(ctx, newBooking(fieldID, 1, start, end))
	require.NoError(t, err)

	// без блокировки и без проверки - срабатывает только constraint
	_, err = repo.Create(ctx, newBooking(fieldID, 2, start.Add(30*time.Minute), end.Add(30*time.Minute)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestRepository_TouchingRangesDoNotConflict(t *testing.T) {
	db, _, fieldID := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	start, end := futureSlot(14)
	_, err := repo.Create(ctx, newBooking(fieldID, 1, start, end))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newBooking(fieldID, 2, end, end.Add(time.Hour)))
	require.NoError(t, err)

	overlap, err := repo.HasOverlap(ctx, fieldID, end.Add(time.Hour), end.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, overlap)

	overlap, err = repo.HasOverlap(ctx, fieldID, start.Add(10*time.Minute), start.Add(20*time.Minute))
	require.NoError(t, err)
	assert.True(t, overlap)
}

func TestRepository_CheckConstraintRejectsInvertedRange(t *testing.T) {
	db, _, fieldID := setupDB(t)
	repo := NewRepository(db)

	start, end := futureSlot(10)
	_, err := repo.Create(context.Background(), newBooking(fieldID, 1, end, start))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestRepository_LockFieldRequiresTransaction(t *testing.T) {
	db, _, fieldID := setupDB(t)
	repo := NewRepository(db)
	tx := txmanager.NewTransactionManager(db)

	assert.ErrorIs(t, repo.LockField(context.Background(), fieldID), ErrTransaction)

	err := tx.Do(context.Background(), func(ctx context.Context) error {
		return repo.LockField(ctx, fieldID)
	})
	assert.NoError(t, err)
}

func TestRepository_Cancel(t *testing.T) {
	db, _, fieldID := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	start, end := futureSlot(16)
	created, err := repo.Create(ctx, newBooking(fieldID, 1, start, end))
	require.NoError(t, err)

	ok, err := repo.CancelByRequester(ctx, created.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok, "foreign requester")

	ok, err = repo.CancelByRequester(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	first, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, first.CancelledAt)
	assert.Equal(t, domain.StatusCancelled, first.Status)

	ok, err = repo.CancelByRequester(ctx, created.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok, "repeated cancel is consistent")

	second, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, first.CancelledAt.Equal(*second.CancelledAt))

	// отменённый интервал снова свободен
	_, err = repo.Create(ctx, newBooking(fieldID, 3, start, end))
	assert.NoError(t, err)
}

func TestRepository_CancelByOwner(t *testing.T) {
	db, facilityID, fieldID := setupDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	start, end := futureSlot(18)
	created, err := repo.Create(ctx, newBooking(fieldID, 1, start, end))
	require.NoError(t, err)

	ok, err := repo.CancelByOwner(ctx, created.ID, testOwnerID+1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.CancelByOwner(ctx, created.ID, testOwnerID)
	require.NoError(t, err)
	assert.True(t, ok)

	taken, err := repo.GetByFacilityInRange(ctx, facilityID, start.Truncate(24*time.Hour), start.Truncate(24*time.Hour).Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, taken)
}
