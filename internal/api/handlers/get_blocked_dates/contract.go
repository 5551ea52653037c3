package get_blocked_dates

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/service/schedule/models"
)

type SalonProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

type ScheduleService interface {
	ListBlockedDates(ctx context.Context, salon *domain.Salon, from, to time.Time) (*models.BlockedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
