package delete_blocked_date

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

type SalonProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

type ScheduleService interface {
	DeleteBlockedDate(ctx context.Context, salon *domain.Salon, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
