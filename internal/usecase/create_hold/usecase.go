package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	catalogRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/catalog"
	holdRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/hold"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/availability"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// UseCase use case резервации слота на время заполнения формы.
// Проверка занятости и вставка hold'а выполняются в сериализуемой
// транзакции; exclusion-ограничение БД закрывает гонку двух
// одновременных запросов на один интервал.
type UseCase struct {
	salonRepo    SalonRepository
	catalogRepo  CatalogRepository
	holdRepo     HoldRepository
	availability AvailabilityService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	salonRepo SalonRepository,
	catalogRepo CatalogRepository,
	holdRepo HoldRepository,
	availabilitySvc AvailabilityService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		salonRepo:    salonRepo,
		catalogRepo:  catalogRepo,
		holdRepo:     holdRepo,
		availability: availabilitySvc,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case резервации слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: salon=%s, service=%d, staff=%d, date=%s, time=%s",
		req.SalonSlug, req.ServiceID, req.StaffID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем салон по slug
	salon, err := uc.salonRepo.GetBySlug(ctx, req.SalonSlug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateHold: salon slug=%s not found", req.SalonSlug)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateHold: failed to get salon slug=%s: %v", req.SalonSlug, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		uc.logger.Error("CreateHold: invalid timezone %q for salon=%d", salon.Timezone, salon.ID)
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

	// 3. Получаем услугу в рамках салона
	service, err := uc.catalogRepo.GetService(ctx, salon.ID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateHold: service id=%d not found in salon=%d", req.ServiceID, salon.ID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateHold: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsActive || !service.OnlineBookingEnabled {
		uc.logger.Warn("CreateHold: service id=%d is not bookable online", req.ServiceID)
		return nil, ErrServiceUnavailable
	}

	// 4. Получаем вариант услуги, если выбран
	var variant *domain.ServiceVariant
	if req.VariantID != nil {
		variant, err = uc.catalogRepo.GetVariant(ctx, service.ID, *req.VariantID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrVariantNotFound) {
				uc.logger.Warn("CreateHold: variant id=%d not found for service=%d", *req.VariantID, service.ID)
				return nil, ErrVariantNotFound
			}
			uc.logger.Error("CreateHold: failed to get variant id=%d: %v", *req.VariantID, err)
			return nil, fmt.Errorf("%w: failed to get variant: %v", ErrInternal, err)
		}
	}

	// 5. Получаем мастера в рамках салона
	staff, err := uc.catalogRepo.GetStaff(ctx, salon.ID, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateHold: staff id=%d not found in salon=%d", req.StaffID, salon.ID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateHold: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("CreateHold: staff id=%d is not active", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 6. Генерируем session token до транзакции
	sessionToken, err := generateSessionToken()
	if err != nil {
		uc.logger.Error("CreateHold: failed to generate session token: %v", err)
		return nil, fmt.Errorf("%w: failed to generate token: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now()
	query := availability.SlotQuery{
		Salon:   salon,
		Service: service,
		Variant: variant,
		StaffID: staff.ID,
		Date:    date,
		Now:     now,
	}

	// 7. Проверяем слот и создаем hold атомарно.
	// Окно бронирования пересчитывается от текущего времени сервера:
	// данным, на которых клиент выбирал слот, доверять нельзя.
	var created *domain.SlotHold
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		interval, err := uc.availability.CheckSlot(txCtx, query, startTime)
		if err != nil {
			return err
		}

		hold := &domain.SlotHold{
			SalonID:      salon.ID,
			StaffID:      staff.ID,
			ServiceID:    service.ID,
			VariantID:    req.VariantID,
			StartTime:    interval.Start,
			EndTime:      interval.End,
			SessionToken: sessionToken,
			ExpiresAt:    now.Add(domain.HoldTTLMinutes * time.Minute),
		}

		created, err = uc.holdRepo.Create(txCtx, hold, now)
		return err
	})
	if err != nil {
		return nil, uc.mapHoldError(err)
	}

	uc.logger.Info("CreateHold: created hold id=%d for staff=%d, %s %s, expires at %s",
		created.ID, staff.ID, req.Date, req.StartTime, created.ExpiresAt.Format(time.RFC3339))

	endTime := created.EndTime.In(loc).Format(domain.TimeFormat)
	return &Response{
		HoldID:       created.ID,
		SessionToken: created.SessionToken,
		ExpiresAt:    created.ExpiresAt,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      endTime,
	}, nil
}

// mapHoldError переводит ошибки проверки и вставки в ошибки usecase
func (uc *UseCase) mapHoldError(err error) error {
	switch {
	case errors.Is(err, availability.ErrSlotTaken), errors.Is(err, holdRepo.ErrSlotTaken):
		uc.logger.Warn("CreateHold: slot is taken")
		return ErrSlotTaken
	case errors.Is(err, availability.ErrOutsideWorkingHours):
		uc.logger.Warn("CreateHold: slot is outside working hours")
		return ErrSlotUnavailable
	case errors.Is(err, availability.ErrTooEarly):
		uc.logger.Warn("CreateHold: slot violates minimum advance time")
		return ErrTooEarly
	case errors.Is(err, availability.ErrDateInPast), errors.Is(err, availability.ErrDateTooFar):
		uc.logger.Warn("CreateHold: date is outside the booking window")
		return ErrInvalidDate
	default:
		uc.logger.Error("CreateHold: failed to create hold: %v", err)
		return fmt.Errorf("%w: failed to create hold: %v", ErrInternal, err)
	}
}
