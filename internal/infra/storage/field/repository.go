package field

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

// Repository читает справочник полей и объектов.
// Таблицами владеет каталог, сервис бронирований их не изменяет.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория полей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает поле вместе с владельцем его объекта
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"f.id",
		"f.facility_id",
		"fa.owner_id",
		"f.name",
		"f.price_per_slot",
		"f.slot_duration_minutes",
		"f.working_hours",
		"f.max_days_in_advance",
		"f.cancellation_hours",
		"f.status",
	).
		From("fields f").
		Join("facilities fa ON fa.id = f.facility_id").
		Where(squirrel.Eq{"f.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		field        domain.Field
		workingHours []byte
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&field.ID,
		&field.FacilityID,
		&field.OwnerID,
		&field.Name,
		&field.PricePerSlot,
		&field.SlotDurationMinutes,
		&workingHours,
		&field.MaxDaysInAdvance,
		&field.CancellationHours,
		&field.Status,
	)
	if err == sql.ErrNoRows {
		return nil, ErrFieldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan field: %v", ErrScanRow, err)
	}

	// NULL или пустой JSON - расписание не задано
	if len(workingHours) > 0 && string(workingHours) != "null" {
		var wh domain.WorkingHours
		if err := json.Unmarshal(workingHours, &wh); err != nil {
			return nil, fmt.Errorf("%w: GetByID - field_id=%d: %v", ErrInvalidWorkingHours, id, err)
		}
		field.WorkingHours = &wh
	}

	return &field, nil
}

// GetFacilityOwnerID возвращает владельца объекта
func (r *Repository) GetFacilityOwnerID(ctx context.Context, facilityID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("owner_id").
		From("facilities").
		Where(squirrel.Eq{"id": facilityID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: GetFacilityOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	var ownerID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return 0, ErrFacilityNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetFacilityOwnerID - scan owner_id: %v", ErrScanRow, err)
	}

	return ownerID, nil
}
