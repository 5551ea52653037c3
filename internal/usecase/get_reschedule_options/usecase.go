package get_reschedule_options

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/availability"
	"github.com/m04kA/Salon-BookingService/pkg/ptr"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// UseCase use case страницы переноса: пригодность бронирования
// и доступные слоты. Чтение никогда не мутирует бронирование.
type UseCase struct {
	salonRepo    SalonRepository
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	availabilitySvc AvailabilityService,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:    salonRepo,
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		availability: availabilitySvc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения вариантов переноса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRescheduleOptions: salon=%s", req.SalonSlug)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetRescheduleOptions: validation failed: %v", err)
		return nil, err
	}

	salon, err := uc.salonRepo.GetBySlug(ctx, req.SalonSlug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetRescheduleOptions: salon slug=%s not found", req.SalonSlug)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetRescheduleOptions: failed to get salon slug=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	booking, err := uc.bookingRepo.GetByRescheduleToken(ctx, salon.ID, req.Token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("GetRescheduleOptions: no booking for token in salon=%d", salon.ID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("GetRescheduleOptions: repository error for salon=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetService(ctx, salon.ID, booking.ServiceID)
	if err != nil {
		uc.logger.Error("GetRescheduleOptions: failed to get service id=%d: %v", booking.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	var variant *domain.ServiceVariant
	if booking.VariantID != nil {
		variant, err = uc.catalogRepo.GetVariant(ctx, service.ID, *booking.VariantID)
		if err != nil {
			uc.logger.Error("GetRescheduleOptions: failed to get variant id=%d: %v", *booking.VariantID, err)
			return nil, fmt.Errorf("%w: failed to get variant: %v", ErrInternal, err)
		}
	}

	now := uc.timeProvider.Now()
	if err := checkEligibility(booking, service, now); err != nil {
		uc.logger.Warn("GetRescheduleOptions: booking id=%d is not eligible: %v", booking.ID, err)
		return nil, err
	}

	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		uc.logger.Error("GetRescheduleOptions: invalid timezone %q for salon=%d", salon.Timezone, salon.ID)
		return nil, fmt.Errorf("%w: invalid salon timezone: %v", ErrInternal, err)
	}
	localStart := booking.StartTime.In(loc)

	resp := &Response{
		Booking: BookingSummary{
			ServiceID:       booking.ServiceID,
			StaffID:         booking.StaffID,
			ServiceName:     booking.ServiceName,
			DurationMinutes: booking.DurationMinutes,
			Price:           booking.ServicePrice,
			Date:            localStart.Format(domain.DateFormat),
			StartTime:       localStart.Format(domain.TimeFormat),
		},
	}

	// Слоты считаются без собственного интервала бронирования:
	// перенос на соседнее время того же дня должен быть возможен
	if req.Date != nil {
		slots, err := uc.availability.DaySlots(ctx, availability.SlotQuery{
			Salon:            salon,
			Service:          service,
			Variant:          variant,
			StaffID:          booking.StaffID,
			Date:             *req.Date,
			Now:              now,
			ExcludeBookingID: ptr.Ptr(booking.ID),
		})
		switch {
		case err == nil:
			resp.Slots = slots
		case errors.Is(err, availability.ErrDateInPast), errors.Is(err, availability.ErrDateTooFar):
			resp.Slots = []types.TimeString{}
		default:
			uc.logger.Error("GetRescheduleOptions: availability error: %v", err)
			return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}
	}

	return resp, nil
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
