package mailer

import "errors"

var (
	// ErrInternal возвращается при ошибках формирования или отправки запроса
	ErrInternal = errors.New("mailer: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе сервиса рассылки
	ErrInvalidResponse = errors.New("mailer: invalid response")
)
