package domain

import "time"

// SlotHold временная резервация слота на время заполнения контактной формы.
// Hold никогда не превращается в бронирование "на месте": бронирование
// создаётся отдельной строкой из данных hold'а, после чего hold удаляется.
type SlotHold struct {
	ID        int64
	SalonID   int64
	StaffID   int64
	ServiceID int64
	VariantID *int64

	StartTime time.Time
	EndTime   time.Time

	// SessionToken секрет, возвращаемый браузеру. Единственный способ
	// подтвердить или отменить этот hold.
	SessionToken string

	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired возвращает true, если hold истёк к моменту now
func (h *SlotHold) IsExpired(now time.Time) bool {
	return !h.ExpiresAt.After(now)
}

// Interval возвращает занимаемый интервал [StartTime, EndTime)
func (h *SlotHold) Interval() Interval {
	return Interval{Start: h.StartTime, End: h.EndTime}
}
