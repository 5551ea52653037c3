package cancel_booking_by_token

import (
	"context"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

type SalonProvider interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Salon, error)
}

type BookingsService interface {
	CancelByToken(ctx context.Context, salon *domain.Salon, cancelToken string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
