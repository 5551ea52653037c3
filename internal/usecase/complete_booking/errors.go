package complete_booking

import "errors"

var (
	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("salon not found")

	// ErrHoldExpired возвращается, когда hold отсутствует, токен не совпал
	// или истёк expires_at. UI по этой ошибке возвращает клиента
	// к выбору слота.
	ErrHoldExpired = errors.New("hold is expired")

	// ErrSlotTaken возвращается, когда интервал hold'а успело занять
	// бронирование, созданное другим путём
	ErrSlotTaken = errors.New("slot is already taken")

	// ErrCaptchaFailed возвращается, когда капча не пройдена
	ErrCaptchaFailed = errors.New("captcha verification failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
