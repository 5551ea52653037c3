package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
)

type contextKey string

const (
	// HeaderSalonID заголовок с ID салона владельца.
	// Аутентификацию выполняет внешний шлюз, сюда приходит уже проверенный ID.
	HeaderSalonID = "X-Salon-ID"

	salonIDKey contextKey = "salonID"

	msgMissingSalonID = "отсутствует ID салона"
	msgInvalidSalonID = "некорректный ID салона"
)

// Auth извлекает ID салона из заголовка и кладёт его в контекст запроса.
// Запросы без заголовка до handler'ов не доходят.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderSalonID)
		if raw == "" {
			handlers.RespondUnauthorized(w, msgMissingSalonID)
			return
		}

		salonID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || salonID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidSalonID)
			return
		}

		ctx := context.WithValue(r.Context(), salonIDKey, salonID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSalonID возвращает ID салона из контекста запроса
func GetSalonID(ctx context.Context) (int64, bool) {
	salonID, ok := ctx.Value(salonIDKey).(int64)
	return salonID, ok
}
