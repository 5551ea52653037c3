package complete_booking

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	holdRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/hold"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/integrations/captcha"
	"github.com/m04kA/Salon-BookingService/internal/integrations/mailer"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
)

// UseCase use case превращения hold'а в бронирование.
// Hold одноразовый: после успешного подтверждения он удаляется,
// бронирование создаётся отдельной строкой со снапшотом
// длительности и цены на момент подтверждения.
type UseCase struct {
	salonRepo     SalonRepository
	catalogRepo   CatalogRepository
	holdRepo      HoldRepository
	bookingRepo   BookingRepository
	txManager     TransactionManager
	captchaClient CaptchaClient
	mailerClient  MailerClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	catalogRepo CatalogRepository,
	holdRepo HoldRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	captchaClient CaptchaClient,
	mailerClient MailerClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:     salonRepo,
		catalogRepo:   catalogRepo,
		holdRepo:      holdRepo,
		bookingRepo:   bookingRepo,
		txManager:     txManager,
		captchaClient: captchaClient,
		mailerClient:  mailerClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case подтверждения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteBooking: salon=%s, hold=%d", req.SalonSlug, req.HoldID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CompleteBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка капчи до любых обращений к данным
	if err := uc.captchaClient.Verify(ctx, req.CaptchaToken); err != nil {
		if errors.Is(err, captcha.ErrCaptchaFailed) {
			uc.logger.Warn("CompleteBooking: captcha verification failed for hold id=%d", req.HoldID)
			return nil, ErrCaptchaFailed
		}
		uc.logger.Error("CompleteBooking: captcha service error: %v", err)
		return nil, fmt.Errorf("%w: captcha service error: %v", ErrInternal, err)
	}

	// 3. Получаем салон по slug
	salon, err := uc.salonRepo.GetBySlug(ctx, req.SalonSlug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CompleteBooking: salon slug=%s not found", req.SalonSlug)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CompleteBooking: failed to get salon slug=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Загружаем hold и проверяем его пригодность.
	// Отсутствие, несовпадение токена и истёкший срок неразличимы
	// для клиента: во всех случаях UI возвращает к выбору слота.
	hold, err := uc.holdRepo.GetByID(ctx, req.HoldID)
	if err != nil {
		if errors.Is(err, holdRepo.ErrHoldNotFound) {
			uc.logger.Warn("CompleteBooking: hold id=%d not found", req.HoldID)
			return nil, ErrHoldExpired
		}
		uc.logger.Error("CompleteBooking: failed to get hold id=%d: %v", req.HoldID, err)
		return nil, fmt.Errorf("%w: failed to get hold: %v", ErrInternal, err)
	}

	if hold.SalonID != salon.ID {
		uc.logger.Warn("CompleteBooking: hold id=%d belongs to another salon", req.HoldID)
		return nil, ErrHoldExpired
	}

	if subtle.ConstantTimeCompare([]byte(hold.SessionToken), []byte(req.SessionToken)) != 1 {
		uc.logger.Warn("CompleteBooking: session token mismatch for hold id=%d", req.HoldID)
		return nil, ErrHoldExpired
	}

	now := uc.timeProvider.Now()
	if hold.IsExpired(now) {
		uc.logger.Warn("CompleteBooking: hold id=%d expired at %s", req.HoldID, hold.ExpiresAt.Format(time.RFC3339))
		return nil, ErrHoldExpired
	}

	// 5. Снапшоты услуги и мастера на момент подтверждения
	service, err := uc.catalogRepo.GetService(ctx, salon.ID, hold.ServiceID)
	if err != nil {
		uc.logger.Error("CompleteBooking: failed to get service id=%d: %v", hold.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	var variant *domain.ServiceVariant
	if hold.VariantID != nil {
		variant, err = uc.catalogRepo.GetVariant(ctx, service.ID, *hold.VariantID)
		if err != nil {
			uc.logger.Error("CompleteBooking: failed to get variant id=%d: %v", *hold.VariantID, err)
			return nil, fmt.Errorf("%w: failed to get variant: %v", ErrInternal, err)
		}
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, salon.ID, hold.StaffID)
	if err != nil {
		uc.logger.Error("CompleteBooking: failed to get staff id=%d: %v", hold.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	booking := &domain.Booking{
		SalonID:         salon.ID,
		ServiceID:       service.ID,
		StaffID:         staff.ID,
		VariantID:       hold.VariantID,
		StartTime:       hold.StartTime,
		EndTime:         hold.EndTime,
		Status:          domain.StatusConfirmed,
		Source:          domain.SourceWidget,
		ServiceName:     serviceDisplayName(service, variant),
		DurationMinutes: service.EffectiveDuration(variant),
		ServicePrice:    service.EffectivePrice(variant),
		ClientName:      strings.TrimSpace(req.ClientName),
		ClientPhone:     strings.TrimSpace(req.ClientPhone),
		ClientEmail:     req.ClientEmail,
		Notes:           req.Notes,
		CancelToken:     uuid.NewString(),
		RescheduleToken: ptr.Ptr(uuid.NewString()),
	}

	// 6. Повторная проверка занятости и создание бронирования атомарно.
	// Интервал hold'а уже зарезервирован, но бронирование могло появиться
	// другим путём (дашборд), поэтому пересечения перепроверяются.
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		others, err := uc.bookingRepo.GetActiveByStaffAndRange(txCtx, staff.ID, hold.StartTime, hold.EndTime, nil)
		if err != nil {
			return fmt.Errorf("failed to check occupancy: %w", err)
		}
		for _, other := range others {
			if hold.Interval().Overlaps(other.Interval()) {
				return bookingRepo.ErrSlotTaken
			}
		}

		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		return uc.holdRepo.Delete(txCtx, hold.ID)
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			uc.logger.Warn("CompleteBooking: slot for hold id=%d is taken", req.HoldID)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CompleteBooking: failed to create booking for hold id=%d: %v", req.HoldID, err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	loc, locErr := time.LoadLocation(salon.Timezone)
	if locErr != nil {
		loc = time.UTC
	}
	localStart := created.StartTime.In(loc)

	uc.logger.Info("CompleteBooking: created booking id=%d from hold id=%d, start=%s",
		created.ID, req.HoldID, localStart.Format(time.RFC3339))

	// 7. Письма клиенту и владельцу в фоне, сбой не ломает бронирование
	uc.sendEmails(salon, staff, created, localStart)

	return &Response{
		BookingID:       created.ID,
		Date:            localStart.Format(domain.DateFormat),
		StartTime:       localStart.Format(domain.TimeFormat),
		Status:          string(created.Status),
		CancelToken:     created.CancelToken,
		RescheduleToken: *created.RescheduleToken,
	}, nil
}

// serviceDisplayName собирает имя услуги с вариантом для истории
func serviceDisplayName(service *domain.Service, variant *domain.ServiceVariant) string {
	if variant == nil {
		return service.Name
	}
	return fmt.Sprintf("%s (%s)", service.Name, variant.Name)
}

// sendEmails отправляет подтверждение клиенту и уведомление владельцу
func (uc *UseCase) sendEmails(salon *domain.Salon, staff *domain.Staff, booking *domain.Booking, localStart time.Time) {
	email := &mailer.BookingEmail{
		SalonName:   salon.Name,
		SalonSlug:   salon.Slug,
		OwnerEmail:  salon.OwnerEmail,
		ClientName:  booking.ClientName,
		ServiceName: booking.ServiceName,
		StaffName:   staff.Name,
		Date:        localStart.Format(domain.DateFormat),
		StartTime:   localStart.Format(domain.TimeFormat),
		Price:       booking.ServicePrice,
	}
	if booking.ClientEmail != nil {
		email.ClientEmail = *booking.ClientEmail
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if email.ClientEmail != "" {
			if err := uc.mailerClient.SendBookingConfirmation(ctx, email); err != nil {
				uc.logger.Error("CompleteBooking: failed to send confirmation email for booking id=%d: %v", booking.ID, err)
			}
		}

		if err := uc.mailerClient.SendOwnerNotification(ctx, email); err != nil {
			uc.logger.Error("CompleteBooking: failed to send owner notification for booking id=%d: %v", booking.ID, err)
		}
	}()
}
