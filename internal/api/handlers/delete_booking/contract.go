package delete_booking

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

type SalonProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

type BookingsService interface {
	Delete(ctx context.Context, salon *domain.Salon, bookingID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
