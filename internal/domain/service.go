package domain

import "time"

// Service услуга салона, доступная для записи
type Service struct {
	ID      int64
	SalonID int64
	Name    string

	DurationMinutes    int
	BufferAfterMinutes int // Время уборки/подготовки после услуги
	Price              float64

	// Booking window policy; nil = значение по умолчанию
	// (DefaultMinAdvanceHours / DefaultMaxAdvanceDays)
	MinAdvanceHours *int
	MaxAdvanceDays  *int

	IsActive             bool
	OnlineBookingEnabled bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceVariant подвариант услуги (например, "длинные волосы"),
// переопределяющий длительность и цену
type ServiceVariant struct {
	ID              int64
	ServiceID       int64
	Name            string
	DurationMinutes int
	Price           float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveMinAdvanceHours возвращает минимальный горизонт бронирования в часах
func (s *Service) EffectiveMinAdvanceHours() int {
	if s.MinAdvanceHours == nil {
		return DefaultMinAdvanceHours
	}
	return *s.MinAdvanceHours
}

// EffectiveMaxAdvanceDays возвращает максимальный горизонт бронирования в днях
func (s *Service) EffectiveMaxAdvanceDays() int {
	if s.MaxAdvanceDays == nil || *s.MaxAdvanceDays <= 0 {
		return DefaultMaxAdvanceDays
	}
	return *s.MaxAdvanceDays
}

// EffectiveDuration возвращает длительность услуги в минутах.
// Если выбран вариант, его длительность авторитетна для расчёта слотов.
func (s *Service) EffectiveDuration(variant *ServiceVariant) int {
	if variant != nil {
		return variant.DurationMinutes
	}
	return s.DurationMinutes
}

// EffectivePrice возвращает цену услуги с учётом выбранного варианта
func (s *Service) EffectivePrice(variant *ServiceVariant) float64 {
	if variant != nil {
		return variant.Price
	}
	return s.Price
}
