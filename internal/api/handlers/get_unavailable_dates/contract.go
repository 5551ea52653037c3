package get_unavailable_dates

import (
	"context"

	getUnavailableDates "github.com/m04kA/Salon-BookingService/internal/usecase/get_unavailable_dates"
)

type GetUnavailableDatesUseCase interface {
	Execute(ctx context.Context, req *getUnavailableDates.Request) (*getUnavailableDates.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
