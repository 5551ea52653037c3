package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий каталога: услуги, варианты услуг и мастера.
// Записи создаются CRUD-экранами дашборда (вне этого сервиса),
// здесь только чтение, всегда с фильтром по salon_id.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу салона по ID
func (r *Repository) GetService(ctx context.Context, salonID, serviceID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"name",
		"duration_minutes",
		"buffer_after_minutes",
		"price",
		"min_advance_hours",
		"max_advance_days",
		"is_active",
		"online_booking_enabled",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.SalonID,
		&svc.Name,
		&svc.DurationMinutes,
		&svc.BufferAfterMinutes,
		&svc.Price,
		&svc.MinAdvanceHours,
		&svc.MaxAdvanceDays,
		&svc.IsActive,
		&svc.OnlineBookingEnabled,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan row: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}

// GetVariant получает вариант услуги по ID с проверкой принадлежности услуге
func (r *Repository) GetVariant(ctx context.Context, serviceID, variantID int64) (*domain.ServiceVariant, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"duration_minutes",
		"price",
		"created_at",
		"updated_at",
	).
		From("service_variants").
		Where(squirrel.Eq{"id": variantID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetVariant - build select query: %v", ErrBuildQuery, err)
	}

	var variant domain.ServiceVariant
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&variant.ID,
		&variant.ServiceID,
		&variant.Name,
		&variant.DurationMinutes,
		&variant.Price,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrVariantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVariant - scan row: %v", ErrScanRow, err)
	}

	variant.CreatedAt = createdAt.Time
	variant.UpdatedAt = updatedAt.Time

	return &variant, nil
}

// GetStaff получает мастера салона по ID
func (r *Repository) GetStaff(ctx context.Context, salonID, staffID int64) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"name",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("staff").
		Where(squirrel.Eq{"id": staffID, "salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %v", ErrBuildQuery, err)
	}

	var staff domain.Staff
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.SalonID,
		&staff.Name,
		&staff.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan row: %v", ErrScanRow, err)
	}

	staff.CreatedAt = createdAt.Time
	staff.UpdatedAt = updatedAt.Time

	return &staff, nil
}
