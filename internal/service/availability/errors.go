package availability

import "errors"

var (
	// ErrInvalidTimezone возвращается при некорректной IANA-зоне салона
	ErrInvalidTimezone = errors.New("availability: invalid salon timezone")

	// ErrDateInPast возвращается, когда запрошенный день уже прошёл
	ErrDateInPast = errors.New("availability: date is in the past")

	// ErrDateTooFar возвращается, когда день дальше max_advance_days услуги
	ErrDateTooFar = errors.New("availability: date is too far in the future")

	// ErrTooEarly возвращается, когда время начала нарушает min_advance_hours
	ErrTooEarly = errors.New("availability: start time violates minimum advance")

	// ErrOutsideWorkingHours возвращается, когда интервал не помещается
	// в открытые под-интервалы дня мастера
	ErrOutsideWorkingHours = errors.New("availability: interval is outside working hours")

	// ErrSlotTaken возвращается, когда интервал пересекается с активным
	// бронированием или живым hold'ом
	ErrSlotTaken = errors.New("availability: slot is taken")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("availability: internal error")
)
