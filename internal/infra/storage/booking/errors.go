package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда интервал мастера уже занят другим
	// активным бронированием (exclusion constraint на staff_id + интервал)
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrAlreadyRescheduled возвращается при попытке повторного переноса
	ErrAlreadyRescheduled = errors.New("booking.repository: booking already rescheduled")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
