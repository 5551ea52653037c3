package domain

import "time"

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// BookingSource источник создания бронирования
type BookingSource string

const (
	SourceWidget    BookingSource = "widget"
	SourceDashboard BookingSource = "dashboard"
)

// Booking запись клиента в салоне
type Booking struct {
	ID        int64
	SalonID   int64
	ServiceID int64
	StaffID   int64
	VariantID *int64 // ID варианта услуги (например, "длинные волосы"), если выбран

	// Абсолютные моменты начала и конца; конец включает buffer_after
	StartTime time.Time
	EndTime   time.Time

	Status BookingStatus
	Source BookingSource

	// Денормализованные данные для истории: название, длительность и цена фиксируются
	// на момент создания, последующие правки услуги историю не меняют
	ServiceName     string
	DurationMinutes int
	ServicePrice    float64

	ClientName  string
	ClientPhone string
	ClientEmail *string
	Notes       *string

	// Одноразовые токены клиентских ссылок
	CancelToken     string
	RescheduleToken *string // nil после использования

	WasRescheduled    bool
	OriginalStartTime *time.Time // заполняются один раз при переносе
	OriginalEndTime   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive сообщает, занимает ли бронирование свой интервал времени
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled сообщает, можно ли отменить бронирование
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsFinished сообщает, достигло ли бронирование терминального статуса
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCancelled || b.Status == StatusCompleted || b.Status == StatusNoShow
}

// Interval возвращает занимаемый интервал [StartTime, EndTime)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// CanTransitionTo проверяет допустимость перехода статуса.
// Переходы управляются из дашборда: pending → confirmed → completed/no_show,
// отмена возможна из pending и confirmed.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch next {
	case StatusConfirmed:
		return b.Status == StatusPending
	case StatusCompleted, StatusNoShow:
		return b.Status == StatusConfirmed
	case StatusCancelled:
		return b.Status == StatusPending || b.Status == StatusConfirmed
	default:
		return false
	}
}

// SalonBookingsFilter фильтр для получения бронирований салона
type SalonBookingsFilter struct {
	SalonID         int64          // Обязательный параметр
	StaffID         *int64         // Фильтр по мастеру (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и завершенные бронирования
}
