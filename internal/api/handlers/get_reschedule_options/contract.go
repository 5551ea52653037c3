package get_reschedule_options

import (
	"context"

	getRescheduleOptions "github.com/m04kA/Salon-BookingService/internal/usecase/get_reschedule_options"
)

type GetRescheduleOptionsUseCase interface {
	Execute(ctx context.Context, req *getRescheduleOptions.Request) (*getRescheduleOptions.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
