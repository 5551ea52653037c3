package reschedule_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден по slug
	ErrSalonNotFound = errors.New("salon not found")

	// ErrBookingNotFound возвращается, когда токен не соответствует
	// ни одному бронированию салона (в том числе уже использованный токен)
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAlreadyRescheduled возвращается при повторной попытке переноса
	ErrAlreadyRescheduled = errors.New("booking already rescheduled")

	// ErrWrongStatus возвращается, когда бронирование отменено или завершено
	ErrWrongStatus = errors.New("booking has wrong status")

	// ErrTooLate возвращается, когда бронирование уже началось или до него
	// осталось меньше min_advance_hours
	ErrTooLate = errors.New("too late to reschedule")

	// ErrInvalidDate возвращается, когда новая дата вне окна бронирования
	ErrInvalidDate = errors.New("invalid date")

	// ErrSlotTaken возвращается, когда новый интервал занят
	ErrSlotTaken = errors.New("slot already taken")

	// ErrCaptchaFailed возвращается, когда капча не пройдена
	ErrCaptchaFailed = errors.New("captcha verification failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal внутренняя ошибка use case
	ErrInternal = errors.New("internal error")
)
