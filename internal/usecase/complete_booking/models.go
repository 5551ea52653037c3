package complete_booking

// Request модель запроса на подтверждение бронирования из hold'а
type Request struct {
	SalonSlug    string  // Slug салона из URL
	HoldID       int64   // ID hold'а
	SessionToken string  // Токен, выданный при создании hold'а
	ClientName   string  // Имя клиента
	ClientPhone  string  // Телефон клиента
	ClientEmail  *string // Email клиента (опционально)
	Notes        *string // Комментарий к записи (опционально)
	CaptchaToken string  // Токен капчи с формы
}

// Response модель ответа с данными созданного бронирования
type Response struct {
	BookingID int64  `json:"bookingId"`
	Date      string `json:"date"`      // "2006-01-02" в часовом поясе салона
	StartTime string `json:"startTime"` // "15:04" в часовом поясе салона
	Status    string `json:"status"`

	// Одноразовые токены клиентских ссылок управления записью
	CancelToken     string `json:"cancelToken"`
	RescheduleToken string `json:"rescheduleToken"`
}
