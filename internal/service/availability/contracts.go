package availability

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория календарных данных
type ScheduleRepository interface {
	GetWorkingHours(ctx context.Context, salonID int64, dayOfWeek int) (*domain.WorkingHours, error)
	GetStaffSchedule(ctx context.Context, staffID int64, dayOfWeek int) (*domain.StaffSchedule, error)
	GetBlockedDates(ctx context.Context, salonID, staffID int64, from, to time.Time) ([]*domain.BlockedDate, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByStaffAndRange(ctx context.Context, staffID int64, from, to time.Time, excludeBookingID *int64) ([]*domain.Booking, error)
}

// HoldRepository интерфейс репозитория hold'ов
type HoldRepository interface {
	GetActiveByStaffAndRange(ctx context.Context, staffID int64, from, to time.Time, now time.Time) ([]*domain.SlotHold, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
