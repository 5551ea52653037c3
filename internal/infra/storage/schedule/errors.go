package schedule

import "errors"

var (
	// ErrWorkingHoursNotFound возвращается, когда рабочие часы на день не заданы
	ErrWorkingHoursNotFound = errors.New("schedule.repository: working hours not found")

	// ErrStaffScheduleNotFound возвращается, когда расписание мастера на день не задано
	ErrStaffScheduleNotFound = errors.New("schedule.repository: staff schedule not found")

	// ErrBlockedDateNotFound возвращается, когда блокировка даты не найдена
	ErrBlockedDateNotFound = errors.New("schedule.repository: blocked date not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
