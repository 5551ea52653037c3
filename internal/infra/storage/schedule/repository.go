package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/pkg/dbmetrics"
	"github.com/m04kA/Salon-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий календарных данных: рабочие часы салона,
// недельные расписания мастеров и блокировки дат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWorkingHours получает рабочие часы салона на день недели
func (r *Repository) GetWorkingHours(ctx context.Context, salonID int64, dayOfWeek int) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_open",
	).
		From("working_hours").
		Where(squirrel.Eq{"salon_id": salonID, "day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ID,
		&wh.SalonID,
		&wh.DayOfWeek,
		&wh.OpenTime,
		&wh.CloseTime,
		&wh.IsOpen,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - scan row: %v", ErrScanRow, err)
	}

	return &wh, nil
}

// GetAllWorkingHours получает рабочие часы салона на все дни недели
func (r *Repository) GetAllWorkingHours(ctx context.Context, salonID int64) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"day_of_week",
		"open_time",
		"close_time",
		"is_open",
	).
		From("working_hours").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.WorkingHours, 0, 7)
	for rows.Next() {
		var wh domain.WorkingHours
		if err := rows.Scan(&wh.ID, &wh.SalonID, &wh.DayOfWeek, &wh.OpenTime, &wh.CloseTime, &wh.IsOpen); err != nil {
			return nil, fmt.Errorf("%w: GetAllWorkingHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, &wh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// UpsertWorkingHours создает или обновляет рабочие часы салона на день недели
func (r *Repository) UpsertWorkingHours(ctx context.Context, wh *domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_hours").
		Columns("salon_id", "day_of_week", "open_time", "close_time", "is_open").
		Values(wh.SalonID, wh.DayOfWeek, wh.OpenTime, wh.CloseTime, wh.IsOpen).
		Suffix(`ON CONFLICT (salon_id, day_of_week)
			DO UPDATE SET open_time = EXCLUDED.open_time,
			              close_time = EXCLUDED.close_time,
			              is_open = EXCLUDED.is_open
			RETURNING id`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertWorkingHours - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&wh.ID); err != nil {
		return fmt.Errorf("%w: UpsertWorkingHours - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetStaffSchedule получает расписание мастера на день недели
func (r *Repository) GetStaffSchedule(ctx context.Context, staffID int64, dayOfWeek int) (*domain.StaffSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"day_of_week",
		"start_time",
		"end_time",
		"break_start",
		"break_end",
		"is_working",
	).
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID, "day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var sched domain.StaffSchedule
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sched.ID,
		&sched.StaffID,
		&sched.DayOfWeek,
		&sched.StartTime,
		&sched.EndTime,
		&sched.BreakStart,
		&sched.BreakEnd,
		&sched.IsWorking,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStaffScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffSchedule - scan row: %v", ErrScanRow, err)
	}

	return &sched, nil
}

// GetBlockedDates получает блокировки салона за период [from, to],
// действующие на указанного мастера: общесалонные и адресованные ему
func (r *Repository) GetBlockedDates(ctx context.Context, salonID, staffID int64, from, to time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"staff_id",
		"date",
		"reason",
		"created_at",
	).
		From("blocked_dates").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		Where(squirrel.Or{
			squirrel.Eq{"staff_id": nil},
			squirrel.Eq{"staff_id": staffID},
		}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlockedDates(rows)
}

// ListBlockedDates получает все блокировки салона за период (для дашборда)
func (r *Repository) ListBlockedDates(ctx context.Context, salonID int64, from, to time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"salon_id",
		"staff_id",
		"date",
		"reason",
		"created_at",
	).
		From("blocked_dates").
		Where(squirrel.Eq{"salon_id": salonID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBlockedDates(rows)
}

// CreateBlockedDate создает блокировку даты
func (r *Repository) CreateBlockedDate(ctx context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("salon_id", "staff_id", "date", "reason").
		Values(bd.SalonID, bd.StaffID, bd.Date, bd.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&bd.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %v", ErrExecQuery, err)
	}

	bd.CreatedAt = createdAt.Time
	return bd, nil
}

// DeleteBlockedDate удаляет блокировку даты салона
func (r *Repository) DeleteBlockedDate(ctx context.Context, salonID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"id": id, "salon_id": salonID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

// scanBlockedDates сканирует результаты запроса в слайс блокировок
func scanBlockedDates(rows *sql.Rows) ([]*domain.BlockedDate, error) {
	blocked := make([]*domain.BlockedDate, 0)

	for rows.Next() {
		var bd domain.BlockedDate
		var createdAt sql.NullTime

		if err := rows.Scan(&bd.ID, &bd.SalonID, &bd.StaffID, &bd.Date, &bd.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: scanBlockedDates - scan row: %v", ErrScanRow, err)
		}

		bd.CreatedAt = createdAt.Time
		blocked = append(blocked, &bd)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return blocked, nil
}
