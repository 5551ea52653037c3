package get_unavailable_dates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/availability"
)

// Диапазонный запрос ограничен, чтобы один вызов не обходил годы календаря
const maxPeriodDays = 92

// UseCase use case для получения недоступных дат календаря
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

// Execute выполняет use case получения недоступных дат.
// Список считается тем же кодом, что и слоты дня: день из ответа
// никогда не покажет слоты в детальном представлении.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetUnavailableDates: salon=%s, service=%d, staff=%d, period=%s to %s",
		req.SalonSlug, req.ServiceID, req.StaffID,
		req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetUnavailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем салон по slug
	salon, err := uc.salonRepo.GetBySlug(ctx, req.SalonSlug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetUnavailableDates: salon slug=%s not found", req.SalonSlug)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetUnavailableDates: failed to get salon slug=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 3. Получаем услугу в рамках салона
	service, err := uc.catalogRepo.GetService(ctx, salon.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetUnavailableDates: service id=%d not found in salon=%d", req.ServiceID, salon.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetUnavailableDates: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive || !service.OnlineBookingEnabled {
		uc.logger.Warn("GetUnavailableDates: service id=%d is not bookable online", req.ServiceID)
		return nil, ErrServiceUnavailable
	}

	// 4. Получаем вариант услуги, если выбран
	var variant *domain.ServiceVariant
	if req.VariantID != nil {
		variant, err = uc.catalogRepo.GetVariant(ctx, service.ID, *req.VariantID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrVariantNotFound) {
				uc.logger.Warn("GetUnavailableDates: variant id=%d not found for service=%d", *req.VariantID, service.ID)
				return nil, ErrVariantNotFound
			}
			uc.logger.Error("GetUnavailableDates: failed to get variant id=%d: %v", *req.VariantID, err)
			return nil, fmt.Errorf("%w: failed to get variant: %v", ErrInternal, err)
		}
	}

	// 5. Получаем мастера в рамках салона
	staff, err := uc.catalogRepo.GetStaff(ctx, salon.ID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetUnavailableDates: staff id=%d not found in salon=%d", req.StaffID, salon.ID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetUnavailableDates: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("GetUnavailableDates: staff id=%d is not active", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 6. Вычисляем недоступные даты
	dates, err := uc.availability.UnavailableDates(ctx, availability.SlotQuery{
		Salon:   salon,
		Service: service,
		Variant: variant,
		StaffID: staff.ID,
		Date:    req.FromDate,
		Now:     uc.timeProvider.Now(),
	}, req.FromDate, req.ToDate)
	if err != nil {
		uc.logger.Error("GetUnavailableDates: availability error: %v", err)
		return nil, fmt.Errorf("%w: failed to compute unavailable dates: %v", ErrInternal, err)
	}

	uc.logger.Info("GetUnavailableDates: %d unavailable dates for salon=%s, staff=%d",
		len(dates), req.SalonSlug, req.StaffID)

	return &Response{
		ServiceID:        service.ID,
		StaffID:          staff.ID,
		UnavailableDates: dates,
	}, nil
}
