package salon

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

// Repository репозиторий салонов (тенантов)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория салонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySlug получает салон по публичному slug (идентификатор в URL виджета)
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Salon, error) {
	return r.getOne(ctx, squirrel.Eq{"slug": slug})
}

// GetByID получает салон по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Salon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"slug",
		"name",
		"timezone",
		"owner_email",
		"created_at",
		"updated_at",
	).
		From("salons").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Salon
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Slug,
		&s.Name,
		&s.Timezone,
		&s.OwnerEmail,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSalonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan row: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
