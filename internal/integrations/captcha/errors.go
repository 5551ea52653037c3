package captcha

import "errors"

var (
	// ErrCaptchaFailed возвращается, когда токен не прошёл проверку
	ErrCaptchaFailed = errors.New("captcha: verification failed")

	// ErrInternal возвращается при ошибках обращения к сервису проверки
	ErrInternal = errors.New("captcha: internal error")
)
