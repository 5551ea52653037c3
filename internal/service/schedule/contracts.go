package schedule

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// ScheduleRepository интерфейс репозитория календарных данных
type ScheduleRepository interface {
	GetAllWorkingHours(ctx context.Context, salonID int64) ([]*domain.WorkingHours, error)
	UpsertWorkingHours(ctx context.Context, wh *domain.WorkingHours) error
	ListBlockedDates(ctx context.Context, salonID int64, from, to time.Time) ([]*domain.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, salonID, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
