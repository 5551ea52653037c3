package hold

import "errors"

var (
	// ErrHoldNotFound возвращается, когда hold не найден
	ErrHoldNotFound = errors.New("hold.repository: hold not found")

	// ErrSlotTaken возвращается, когда интервал мастера уже удерживается
	// другим живым hold'ом (exclusion constraint на staff_id + интервал)
	ErrSlotTaken = errors.New("hold.repository: slot already held")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("hold.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("hold.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("hold.repository: failed to scan row")
)
