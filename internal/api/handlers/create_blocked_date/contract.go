package create_blocked_date

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/service/schedule/models"
)

type SalonProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

type ScheduleService interface {
	CreateBlockedDate(ctx context.Context, salon *domain.Salon, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
