package get_available_slots

import (
	"time"

	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonSlug string    // Slug салона из URL
	ServiceID int64     // ID услуги
	VariantID *int64    // ID варианта услуги (опционально)
	StaffID   int64     // ID мастера
	Date      time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time // Дата, на которую запрашивались слоты
	ServiceID       int64     // ID услуги
	StaffID         int64     // ID мастера
	DurationMinutes int       // Длительность услуги с учётом варианта
	Price           float64   // Цена с учётом варианта
	Slots           []types.TimeString
}
