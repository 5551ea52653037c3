package domain

// Default booking window values
const (
	DefaultMinAdvanceHours = 0
	DefaultMaxAdvanceDays  = 90
)

// HoldTTLMinutes время жизни hold'а с момента создания.
// По истечении hold считается мёртвым: не учитывается в occupancy
// и не может быть превращён в бронирование.
const HoldTTLMinutes = 5

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов
	MaxBufferAfterMinutes     = 120
	MaxNotesLength            = 500
	MaxClientNameLength       = 150
	MaxClientPhoneLength      = 30
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающих свой слот.
// Используются при подсчёте занятости в occupancy-проверках.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses статусы бронирований, освободивших слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
