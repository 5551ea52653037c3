package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/integrations/captcha"
	"github.com/m04kA/Salon-BookingService/internal/integrations/mailer"
	"github.com/m04kA/Salon-BookingService/internal/service/availability"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// UseCase use case переноса бронирования по одноразовому токену.
// Перенос выполняется не более одного раза: UPDATE срабатывает только
// по строке с was_rescheduled = false и обнуляет токен, поэтому
// повторный запрос с тем же токеном не находит бронирование.
type UseCase struct {
	salonRepo     SalonRepository
	catalogRepo   CatalogRepository
	bookingRepo   BookingRepository
	availability  AvailabilityService
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
	bookingRepo BookingRepository,
	availabilitySvc AvailabilityService,
	txManager TransactionManager,
	captchaClient CaptchaClient,
	mailerClient MailerClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:     salonRepo,
		catalogRepo:   catalogRepo,
		bookingRepo:   bookingRepo,
		availability:  availabilitySvc,
		txManager:     txManager,
		captchaClient: captchaClient,
		mailerClient:  mailerClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: salon=%s, date=%s, time=%s", req.SalonSlug, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверка капчи до любых обращений к данным
	if err := uc.captchaClient.Verify(ctx, req.CaptchaToken); err != nil {
		if errors.Is(err, captcha.ErrCaptchaFailed) {
			uc.logger.Warn("RescheduleBooking: captcha verification failed")
			return nil, ErrCaptchaFailed
		}
		uc.logger.Error("RescheduleBooking: captcha service error: %v", err)
		return nil, fmt.Errorf("%w: captcha service error: %v", ErrInternal, err)
	}

	// 3. Получаем салон по slug
	salon, err := uc.salonRepo.GetBySlug(ctx, req.SalonSlug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("RescheduleBooking: salon slug=%s not found", req.SalonSlug)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get salon slug=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		uc.logger.Error("RescheduleBooking: invalid timezone %q for salon=%d", salon.Timezone, salon.ID)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}

	date, err := time.ParseInLocation(domain.DateFormat, req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid time format", ErrInvalidInput)
	}

	// 4. Находим бронирование по токену
	booking, err := uc.bookingRepo.GetByRescheduleToken(ctx, salon.ID, req.Token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: no booking for token in salon=%d", salon.ID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: repository error for salon=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 5. Услуга и мастер для пересчёта слота
	service, err := uc.catalogRepo.GetService(ctx, salon.ID, booking.ServiceID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get service id=%d: %v", booking.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	var variant *domain.ServiceVariant
	if booking.VariantID != nil {
		variant, err = uc.catalogRepo.GetVariant(ctx, service.ID, *booking.VariantID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get variant id=%d: %v", *booking.VariantID, err)
			return nil, fmt.Errorf("%w: failed to get variant: %v", ErrInternal, err)
		}
	}

	staff, err := uc.catalogRepo.GetStaff(ctx, salon.ID, booking.StaffID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get staff id=%d: %v", booking.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 6. Пригодность бронирования к переносу
	now := uc.timeProvider.Now()
	if err := checkEligibility(booking, service, now); err != nil {
		uc.logger.Warn("RescheduleBooking: booking id=%d is not eligible: %v", booking.ID, err)
		return nil, err
	}

	oldStart := booking.StartTime.In(loc)

	query := availability.SlotQuery{
		Salon:            salon,
		Service:          service,
		Variant:          variant,
		StaffID:          booking.StaffID,
		Date:             date,
		Now:              now,
		ExcludeBookingID: ptr.Ptr(booking.ID),
	}

	// 7. Проверяем новый слот и переносим атомарно.
	// UPDATE с условием was_rescheduled = false закрывает гонку двух
	// одновременных запросов с одним токеном.
	var interval domain.Interval
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		interval, err = uc.availability.CheckSlot(txCtx, query, startTime)
		if err != nil {
			return err
		}
		return uc.bookingRepo.Reschedule(txCtx, booking.ID, interval.Start, interval.End)
	})
	if err != nil {
		return nil, uc.mapRescheduleError(err)
	}

	localStart := interval.Start.In(loc)
	uc.logger.Info("RescheduleBooking: booking id=%d moved from %s to %s",
		booking.ID, oldStart.Format(time.RFC3339), localStart.Format(time.RFC3339))

	// 8. Письма клиенту и владельцу в фоне, сбой не ломает перенос
	uc.sendRescheduleNotice(salon, staff, booking, oldStart, localStart)

	return &Response{
		BookingID:    booking.ID,
		Date:         localStart.Format(domain.DateFormat),
		StartTime:    localStart.Format(domain.TimeFormat),
		EndTime:      interval.End.In(loc).Format(domain.TimeFormat),
		OldDate:      oldStart.Format(domain.DateFormat),
		OldStartTime: oldStart.Format(domain.TimeFormat),
	}, nil
}

// checkEligibility проверяет пригодность бронирования к переносу
func checkEligibility(booking *domain.Booking, service *domain.Service, now time.Time) error {
	if booking.WasRescheduled {
		return ErrAlreadyRescheduled
	}
	if !booking.IsActive() {
		return ErrWrongStatus
	}

	minStart := now.Add(time.Duration(service.EffectiveMinAdvanceHours()) * time.Hour)
	if booking.StartTime.Before(now) || booking.StartTime.Before(minStart) {
		return ErrTooLate
	}

	return nil
}

// mapRescheduleError переводит ошибки проверки и переноса в ошибки usecase
func (uc *UseCase) mapRescheduleError(err error) error {
	switch {
	case errors.Is(err, availability.ErrSlotTaken), errors.Is(err, bookingRepo.ErrSlotTaken):
		uc.logger.Warn("RescheduleBooking: target slot is taken")
		return ErrSlotTaken
	case errors.Is(err, availability.ErrOutsideWorkingHours):
		uc.logger.Warn("RescheduleBooking: target slot is outside working hours")
		return ErrSlotTaken
	case errors.Is(err, availability.ErrTooEarly),
		errors.Is(err, availability.ErrDateInPast),
		errors.Is(err, availability.ErrDateTooFar):
		uc.logger.Warn("RescheduleBooking: target date is outside booking window: %v", err)
		return ErrInvalidDate
	case errors.Is(err, bookingRepo.ErrAlreadyRescheduled):
		uc.logger.Warn("RescheduleBooking: booking was already rescheduled concurrently")
		return ErrAlreadyRescheduled
	default:
		uc.logger.Error("RescheduleBooking: failed to reschedule: %v", err)
		return fmt.Errorf("%w: failed to reschedule: %v", ErrInternal, err)
	}
}

// sendRescheduleNotice отправляет письма о новом времени: клиенту, если он
// оставил email, и владельцу салона всегда
func (uc *UseCase) sendRescheduleNotice(salon *domain.Salon, staff *domain.Staff, booking *domain.Booking, oldStart, newStart time.Time) {
	email := &mailer.BookingEmail{
		SalonName:    salon.Name,
		SalonSlug:    salon.Slug,
		OwnerEmail:   salon.OwnerEmail,
		ClientName:   booking.ClientName,
		ServiceName:  booking.ServiceName,
		StaffName:    staff.Name,
		Date:         newStart.Format(domain.DateFormat),
		StartTime:    newStart.Format(domain.TimeFormat),
		Price:        booking.ServicePrice,
		OldDate:      oldStart.Format(domain.DateFormat),
		OldStartTime: oldStart.Format(domain.TimeFormat),
	}
	if booking.ClientEmail != nil {
		email.ClientEmail = *booking.ClientEmail
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if email.ClientEmail != "" {
			if err := uc.mailerClient.SendRescheduleNotice(ctx, email); err != nil {
				uc.logger.Error("RescheduleBooking: failed to send reschedule email for booking id=%d: %v", booking.ID, err)
			}
		}

		if err := uc.mailerClient.SendOwnerNotification(ctx, email); err != nil {
			uc.logger.Error("RescheduleBooking: failed to send owner notification for booking id=%d: %v", booking.ID, err)
		}
	}()
}
