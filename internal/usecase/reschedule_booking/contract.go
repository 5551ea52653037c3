package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/mailer"
	"github.com/m04kA/Salon-BookingService/internal/service/availability"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Salon, error)
}

// CatalogRepository интерфейс репозитория каталога услуг
type CatalogRepository interface {
	GetService(ctx context.Context, salonID, serviceID int64) (*domain.Service, error)
	GetVariant(ctx context.Context, serviceID, variantID int64) (*domain.ServiceVariant, error)
	GetStaff(ctx context.Context, salonID, staffID int64) (*domain.Staff, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByRescheduleToken(ctx context.Context, salonID int64, token string) (*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, newStart, newEnd time.Time) error
}

// AvailabilityService интерфейс сервиса доступности слотов
type AvailabilityService interface {
	CheckSlot(ctx context.Context, q availability.SlotQuery, start types.TimeString) (domain.Interval, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CaptchaClient интерфейс проверки капчи
type CaptchaClient interface {
	Verify(ctx context.Context, token string) error
}

// MailerClient интерфейс клиента почтового сервиса
type MailerClient interface {
	SendRescheduleNotice(ctx context.Context, email *mailer.BookingEmail) error
	SendOwnerNotification(ctx context.Context, email *mailer.BookingEmail) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
