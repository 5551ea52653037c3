package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/availability"
)

// UseCase use case для получения доступных слотов записи
type UseCase struct {
	salonRepo    SalonRepository
	catalogRepo  CatalogRepository
	availability AvailabilityService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	catalogRepo CatalogRepository,
	availabilitySvc AvailabilityService,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:    salonRepo,
		catalogRepo:  catalogRepo,
		availability: availabilitySvc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%s, service=%d, staff=%d, date=%s",
		req.SalonSlug, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем салон по slug
	salon, err := uc.salonRepo.GetBySlug(ctx, req.SalonSlug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon slug=%s not found", req.SalonSlug)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon slug=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Получаем услугу в рамках салона
	service, err := uc.catalogRepo.GetService(ctx, salon.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found in salon=%d", req.ServiceID, salon.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Онлайн-запись возможна только на активную услугу
	if !service.IsActive || !service.OnlineBookingEnabled {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not bookable online", req.ServiceID)
		return nil, ErrServiceUnavailable
	}

	// 5. Получаем вариант услуги, если выбран
	var variant *domain.ServiceVariant
	if req.VariantID != nil {
		variant, err = uc.catalogRepo.GetVariant(ctx, service.ID, *req.VariantID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrVariantNotFound) {
				uc.logger.Warn("GetAvailableSlots: variant id=%d not found for service=%d", *req.VariantID, service.ID)
				return nil, ErrVariantNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get variant id=%d: %v", *req.VariantID, err)
			return nil, fmt.Errorf("%w: failed to get variant: %v", ErrInternal, err)
		}
	}

	// 6. Получаем мастера в рамках салона
	staff, err := uc.catalogRepo.GetStaff(ctx, salon.ID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%d not found in salon=%d", req.StaffID, salon.ID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("GetAvailableSlots: staff id=%d is not active", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 7. Вычисляем доступные слоты дня
	slots, err := uc.availability.DaySlots(ctx, availability.SlotQuery{
		Salon:   salon,
		Service: service,
		Variant: variant,
		StaffID: staff.ID,
		Date:    req.Date,
		Now:     uc.timeProvider.Now(),
	})
	if err != nil {
		return nil, uc.mapAvailabilityError(err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for salon=%s, service=%d, staff=%d, date=%s",
		len(slots), req.SalonSlug, req.ServiceID, req.StaffID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		StaffID:         staff.ID,
		DurationMinutes: service.EffectiveDuration(variant),
		Price:           service.EffectivePrice(variant),
		Slots:           slots,
	}, nil
}

// mapAvailabilityError переводит ошибки сервиса доступности в ошибки usecase
func (uc *UseCase) mapAvailabilityError(err error) error {
	switch {
	case errors.Is(err, availability.ErrDateInPast):
		uc.logger.Warn("GetAvailableSlots: date is in the past")
		return ErrInvalidDate
	case errors.Is(err, availability.ErrDateTooFar):
		uc.logger.Warn("GetAvailableSlots: date is too far in the future")
		return ErrDateTooFarInFuture
	default:
		uc.logger.Error("GetAvailableSlots: availability error: %v", err)
		return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}
}
