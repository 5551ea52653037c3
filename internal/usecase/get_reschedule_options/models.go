package get_reschedule_options

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Request модель запроса вариантов переноса.
// Date == nil возвращает только данные бронирования и пригодность,
// с датой дополнительно считаются слоты этого дня.
type Request struct {
	SalonSlug string     // Slug салона из URL
	Token     string     // Одноразовый reschedule token из письма
	Date      *time.Time // День для расчёта слотов (опционально)
}

// BookingSummary краткие данные бронирования для страницы переноса
type BookingSummary struct {
	ServiceID       int64   `json:"serviceId"`
	StaffID         int64   `json:"staffId"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
}

// Response модель ответа с пригодностью и слотами
type Response struct {
	Booking BookingSummary     `json:"booking"`
	Slots   []types.TimeString `json:"slots,omitempty"` // Слоты запрошенного дня без собственного интервала
}
