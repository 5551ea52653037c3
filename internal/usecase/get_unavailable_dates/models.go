package get_unavailable_dates

import "time"

// Request модель запроса недоступных дат за период
type Request struct {
	SalonSlug string    // Slug салона из URL
	ServiceID int64     // ID услуги
	VariantID *int64    // ID варианта услуги (опционально)
	StaffID   int64     // ID мастера
	FromDate  time.Time // Начало периода
	ToDate    time.Time // Конец периода (включительно)
}

// Response модель ответа со списком недоступных дат
type Response struct {
	ServiceID        int64    // ID услуги
	StaffID          int64    // ID мастера
	UnavailableDates []string // Даты "2006-01-02" без единого доступного слота
}
