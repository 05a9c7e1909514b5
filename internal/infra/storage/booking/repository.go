package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

// Коды ошибок Postgres
const (
	pgExclusionViolation = "23P01"
	pgCheckViolation     = "23514"
)

// ownedFieldsCondition поле бронирования принадлежит объекту владельца
const ownedFieldsCondition = "field_id IN (SELECT f.id FROM fields f JOIN facilities fa ON fa.id = f.facility_id WHERE fa.owner_id = ?)"

var bookingColumns = []string{
	"b.id",
	"b.field_id",
	"b.user_id",
	"b.created_by",
	"b.start_at",
	"b.end_at",
	"b.status",
	"b.price",
	"b.manual_client_name",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
	"f.name",
}

// Repository хранилище бронирований (Availability Store)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockField берёт транзакционную advisory-блокировку на поле.
// Все писатели одного поля выстраиваются в очередь до конца своей транзакции,
// поэтому проверка пересечения и вставка не разделены окном для гонки.
// Вызывать только внутри транзакции.
func (r *Repository) LockField(ctx context.Context, fieldID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockField - field_id=%d", ErrTransaction, fieldID)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(?)", fieldID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockField - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockField - execute: %v", ErrExecQuery, err)
	}
	return nil
}

// HasOverlap true, если у поля есть неотменённое бронирование, пересекающее [start, end)
func (r *Repository) HasOverlap(ctx context.Context, fieldID int64, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"field_id": fieldID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlap - build query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasOverlap - scan: %v", ErrScanRow, err)
	}
	return exists, nil
}

// Create вставляет бронирование.
// Нарушение exclusion constraint (пересечение, пропущенное мимо проверки) возвращается как ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"field_id",
			"user_id",
			"created_by",
			"start_at",
			"end_at",
			"status",
			"price",
			"manual_client_name",
		).
		Values(
			booking.FieldID,
			booking.RequesterID,
			booking.CreatedBy,
			booking.StartAt.UTC(),
			booking.EndAt.UTC(),
			booking.Status,
			booking.Price,
			booking.ManualClient,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pgExclusionViolation:
				return nil, fmt.Errorf("%w: Create - field_id=%d: %v", ErrSlotNotAvailable, booking.FieldID, err)
			case pgCheckViolation:
				return nil, fmt.Errorf("%w: Create - field_id=%d: %v", ErrInvalidRange, booking.FieldID, err)
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID история бронирований пользователя (все статусы), сначала самые поздние
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.start_at DESC", "b.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "GetByUserID", query, args)
}

// CancelByRequester отменяет бронирование, если его создал requesterID.
// Повторная отмена своего бронирования тоже возвращает true; cancelled_at при этом не меняется.
func (r *Repository) CancelByRequester(ctx context.Context, bookingID, requesterID int64) (bool, error) {
	return r.cancel(ctx, "CancelByRequester", squirrel.And{
		squirrel.Eq{"id": bookingID},
		squirrel.Eq{"user_id": requesterID},
	})
}

// CancelByOwner отменяет бронирование (включая техническую блокировку) на поле объекта ownerID
func (r *Repository) CancelByOwner(ctx context.Context, bookingID, ownerID int64) (bool, error) {
	return r.cancel(ctx, "CancelByOwner", squirrel.And{
		squirrel.Eq{"id": bookingID},
		squirrel.Expr(ownedFieldsCondition, ownerID),
	})
}

// cancel условный UPDATE одной строки; false, если ни одна строка не подошла
func (r *Repository) cancel(ctx context.Context, op string, cond squirrel.Sqlizer) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("COALESCE(cancelled_at, NOW())")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(cond).
		Where(squirrel.NotEq{"status": domain.StatusCompleted}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected > 0, nil
}

// GetByFieldInRange неотменённые бронирования поля, пересекающие [from, to), по времени начала
func (r *Repository) GetByFieldInRange(ctx context.Context, fieldID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.field_id": fieldID}).
		Where(squirrel.NotEq{"b.status": domain.StatusCancelled}).
		Where(squirrel.Lt{"b.start_at": to}).
		Where(squirrel.Gt{"b.end_at": from}).
		OrderBy("b.start_at ASC", "b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldInRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "GetByFieldInRange", query, args)
}

// GetByFacilityInRange неотменённые бронирования всех полей объекта, пересекающие [from, to)
func (r *Repository) GetByFacilityInRange(ctx context.Context, facilityID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"f.facility_id": facilityID}).
		Where(squirrel.NotEq{"b.status": domain.StatusCancelled}).
		Where(squirrel.Lt{"b.start_at": to}).
		Where(squirrel.Gt{"b.end_at": from}).
		OrderBy("b.start_at ASC", "b.field_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilityInRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "GetByFacilityInRange", query, args)
}

// GetRecentByFacility последние созданные неотменённые бронирования объекта
// (порядок по времени создания, а не по времени начала)
func (r *Repository) GetRecentByFacility(ctx context.Context, facilityID int64, limit int) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"f.facility_id": facilityID}).
		Where(squirrel.NotEq{"b.status": domain.StatusCancelled}).
		OrderBy("b.created_at DESC", "b.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecentByFacility - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "GetRecentByFacility", query, args)
}

// GetByFacilitySince неотменённые бронирования объекта с start_at >= since, в порядке создания
func (r *Repository) GetByFacilitySince(ctx context.Context, facilityID int64, since time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"f.facility_id": facilityID}).
		Where(squirrel.NotEq{"b.status": domain.StatusCancelled}).
		Where(squirrel.GtOrEq{"b.start_at": since}).
		OrderBy("b.created_at ASC", "b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFacilitySince - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, executor, "GetByFacilitySince", query, args)
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("fields f ON f.id = b.field_id")
}

func (r *Repository) queryBookings(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking

	err := row.Scan(
		&booking.ID,
		&booking.FieldID,
		&booking.RequesterID,
		&booking.CreatedBy,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.Price,
		&booking.ManualClient,
		&booking.CancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.FieldName,
	)
	if err != nil {
		return nil, err
	}

	booking.StartAt = booking.StartAt.UTC()
	booking.EndAt = booking.EndAt.UTC()
	return &booking, nil
}
