package cancel_hold

import "context"

// HoldRepository интерфейс репозитория hold'ов
type HoldRepository interface {
	DeleteByIDAndToken(ctx context.Context, id int64, sessionToken string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
