package schedule

import "errors"

var (
	// ErrBlockedDateNotFound возвращается, когда блокировка даты не найдена
	ErrBlockedDateNotFound = errors.New("blocked date not found")

	// ErrInvalidDayOfWeek возвращается при дне недели вне диапазона 0-6
	ErrInvalidDayOfWeek = errors.New("invalid day of week")

	// ErrInvalidTimeRange возвращается, когда открытие не раньше закрытия
	ErrInvalidTimeRange = errors.New("invalid time range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
