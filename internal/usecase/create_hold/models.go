package create_hold

import "time"

// Request модель запроса на резервацию слота
type Request struct {
	SalonSlug string // Slug салона из URL
	ServiceID int64  // ID услуги
	VariantID *int64 // ID варианта услуги (опционально)
	StaffID   int64  // ID мастера
	Date      string // Дата слота "2006-01-02"
	StartTime string // Время начала "15:04" в часовом поясе салона
}

// Response модель ответа с данными hold'а.
// SessionToken возвращается браузеру один раз и обязателен
// для подтверждения или отмены резервации.
type Response struct {
	HoldID       int64     `json:"holdId"`
	SessionToken string    `json:"sessionToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"` // Конец слота с учётом buffer_after
}
