package handlers

// Машиночитаемые коды ошибок публичного API виджета.
// Фронтенд ветвится по коду, сообщение показывается пользователю как есть.
const (
	CodeSlotTaken          = "SLOT_TAKEN"
	CodeHoldExpired        = "HOLD_EXPIRED"
	CodeBookingNotFound    = "BOOKING_NOT_FOUND"
	CodeAlreadyRescheduled = "ALREADY_RESCHEDULED"
	CodeWrongStatus        = "WRONG_STATUS"
	CodeTooLate            = "TOO_LATE"
	CodeInvalidDate        = "INVALID_DATE"
	CodeCaptchaFailed      = "CAPTCHA_FAILED"
)
