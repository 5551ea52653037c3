package create_hold

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrVariantNotFound возвращается, когда вариант услуги не найден
	ErrVariantNotFound = errors.New("service variant not found")

	// ErrStaffNotFound возвращается, когда мастер не найден
	ErrStaffNotFound = errors.New("staff not found")

	// ErrServiceUnavailable возвращается, когда услуга неактивна
	// или онлайн-запись на неё отключена
	ErrServiceUnavailable = errors.New("service is not available for online booking")

	// ErrSlotTaken возвращается, когда слот пересекается с активным бронированием
	// или чужим hold'ом. Ожидаемая ошибка при одновременном выборе слота.
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrSlotUnavailable возвращается, когда слот вне рабочих часов
	ErrSlotUnavailable = errors.New("slot is outside working hours")

	// ErrTooEarly возвращается при нарушении min_advance_hours услуги
	ErrTooEarly = errors.New("slot violates minimum advance time")

	// ErrInvalidDate возвращается при дате вне окна бронирования
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
