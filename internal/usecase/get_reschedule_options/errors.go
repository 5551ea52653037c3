package get_reschedule_options

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrBookingNotFound возвращается по неизвестному или уже
	// аннулированному токену переноса
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyRescheduled возвращается, когда бронирование уже переносили
	ErrAlreadyRescheduled = errors.New("booking is already rescheduled")

	// ErrWrongStatus возвращается, когда бронирование не активно
	ErrWrongStatus = errors.New("booking status does not allow reschedule")

	// ErrTooLate возвращается, когда время начала уже прошло
	// или ближе, чем min_advance_hours услуги
	ErrTooLate = errors.New("too late to reschedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
