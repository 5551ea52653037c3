package reschedule_booking

// Request запрос на перенос бронирования по одноразовому токену
type Request struct {
	SalonSlug    string `json:"-"`
	Token        string `json:"-"`
	Date         string `json:"date"`       // YYYY-MM-DD в зоне салона
	StartTime    string `json:"start_time"` // HH:MM в зоне салона
	CaptchaToken string `json:"captcha_token"`
}

// Response результат успешного переноса
type Response struct {
	BookingID    int64  `json:"booking_id"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	OldDate      string `json:"old_date"`
	OldStartTime string `json:"old_start_time"`
}
