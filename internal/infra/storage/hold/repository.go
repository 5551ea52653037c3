package hold

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие конфликт занятости слота
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// DBExecutor интерфейс выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// holdColumns полный список колонок таблицы slot_holds в порядке сканирования
var holdColumns = []string{
	"id",
	"salon_id",
	"staff_id",
	"service_id",
	"variant_id",
	"start_time",
	"end_time",
	"session_token",
	"expires_at",
	"created_at",
}

// Repository репозиторий для работы с hold'ами слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория hold'ов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый hold.
// Перед вставкой удаляются hold'ы того же мастера, истёкшие к моменту now и
// пересекающиеся с новым интервалом: exclusion constraint действует на все
// строки таблицы, и мёртвая строка не должна блокировать живую резервацию.
// Конфликт с живым hold'ом транслируется в ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, h *domain.SlotHold, now time.Time) (*domain.SlotHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cleanupQuery, cleanupArgs, err := psqlbuilder.Delete("slot_holds").
		Where(squirrel.Eq{"staff_id": h.StaffID}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		Where(squirrel.Lt{"start_time": h.EndTime}).
		Where(squirrel.Gt{"end_time": h.StartTime}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build cleanup query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, cleanupQuery, cleanupArgs...); err != nil {
		return nil, fmt.Errorf("%w: Create - cleanup expired holds: %v", ErrExecQuery, err)
	}

	query, args, err := psqlbuilder.Insert("slot_holds").
		Columns(
			"salon_id",
			"staff_id",
			"service_id",
			"variant_id",
			"start_time",
			"end_time",
			"session_token",
			"expires_at",
		).
		Values(
			h.SalonID,
			h.StaffID,
			h.ServiceID,
			h.VariantID,
			h.StartTime,
			h.EndTime,
			h.SessionToken,
			h.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &createdAt)
	if isSlotConflict(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	h.CreatedAt = createdAt.Time
	return h, nil
}

// GetByID получает hold по ID, включая истёкшие. Проверка истечения
// остаётся за вызывающим, чтобы отличать "истёк" от "не найден".
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SlotHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(holdColumns...).
		From("slot_holds").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	h, err := scanHold(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrHoldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan hold: %v", ErrScanRow, err)
	}

	return h, nil
}

// GetActiveByStaffAndRange получает живые (неистёкшие на момент now) hold'ы
// мастера, пересекающиеся с интервалом [from, to).
// Внутри транзакции строки блокируются FOR UPDATE.
func (r *Repository) GetActiveByStaffAndRange(
	ctx context.Context,
	staffID int64,
	from, to time.Time,
	now time.Time,
) ([]*domain.SlotHold, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(holdColumns...).
		From("slot_holds").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	holds := make([]*domain.SlotHold, 0)
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByStaffAndRange - scan row: %v", ErrScanRow, err)
		}
		holds = append(holds, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffAndRange - rows error: %v", ErrScanRow, err)
	}

	return holds, nil
}

// DeleteByIDAndToken удаляет hold по ID и session_token.
// Возвращает nil и при отсутствии строки: отмена уже исчезнувшего hold'а
// не ошибка (идемпотентность контракта cancel-hold).
func (r *Repository) DeleteByIDAndToken(ctx context.Context, id int64, sessionToken string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_holds").
		Where(squirrel.Eq{"id": id, "session_token": sessionToken}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByIDAndToken - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByIDAndToken - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет hold по ID (используется при конвертации в бронирование)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_holds").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrHoldNotFound
	}

	return nil
}

// DeleteExpired удаляет все hold'ы, истёкшие к моменту now.
// Вызывается периодическим reaper'ом; возвращает число удалённых строк.
func (r *Repository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slot_holds").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanHold сканирует одну строку в hold
func scanHold(row rowScanner) (*domain.SlotHold, error) {
	var h domain.SlotHold
	var createdAt sql.NullTime

	err := row.Scan(
		&h.ID,
		&h.SalonID,
		&h.StaffID,
		&h.ServiceID,
		&h.VariantID,
		&h.StartTime,
		&h.EndTime,
		&h.SessionToken,
		&h.ExpiresAt,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	h.CreatedAt = createdAt.Time
	return &h, nil
}

// isSlotConflict возвращает true для нарушений уникальности/исключения,
// означающих занятость интервала
func isSlotConflict(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation || string(pqErr.Code) == pgExclusionViolation
	}
	return false
}
