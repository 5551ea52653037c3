package create_hold

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/service/availability"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Salon, error)
}

// CatalogRepository интерфейс репозитория услуг и мастеров
type CatalogRepository interface {
	GetService(ctx context.Context, salonID, serviceID int64) (*domain.Service, error)
	GetVariant(ctx context.Context, serviceID, variantID int64) (*domain.ServiceVariant, error)
	GetStaff(ctx context.Context, salonID, staffID int64) (*domain.Staff, error)
}

// AvailabilityService интерфейс сервиса вычисления доступности
type AvailabilityService interface {
	CheckSlot(ctx context.Context, q availability.SlotQuery, start types.TimeString) (domain.Interval, error)
}

// HoldRepository интерфейс репозитория hold'ов
type HoldRepository interface {
	Create(ctx context.Context, h *domain.SlotHold, now time.Time) (*domain.SlotHold, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
