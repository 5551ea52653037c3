package complete_booking

import (
	"context"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/integrations/mailer"
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

// HoldRepository интерфейс репозитория hold'ов
type HoldRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.SlotHold, error)
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByStaffAndRange(ctx context.Context, staffID int64, from, to time.Time, excludeBookingID *int64) ([]*domain.Booking, error)
}

// CaptchaClient интерфейс проверки капчи на публичных endpoint'ах записи
type CaptchaClient interface {
	Verify(ctx context.Context, token string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MailerClient интерфейс клиента почтовых уведомлений
type MailerClient interface {
	SendBookingConfirmation(ctx context.Context, email *mailer.BookingEmail) error
	SendOwnerNotification(ctx context.Context, email *mailer.BookingEmail) error
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
