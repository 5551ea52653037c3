package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/Salon-BookingService/internal/service/schedule/models"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// Service сервис управления расписанием салона из дашборда:
// рабочие часы по дням недели и блокировки дат
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetWorkingHours получает недельное расписание салона
func (s *Service) GetWorkingHours(ctx context.Context, salon *domain.Salon) (*models.WorkingHoursListResponse, error) {
	s.logger.Info("GetWorkingHours: fetching working hours for salon=%d", salon.ID)

	hours, err := s.scheduleRepo.GetAllWorkingHours(ctx, salon.ID)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error for salon=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWorkingHoursList(hours), nil
}

// UpsertWorkingHours устанавливает рабочие часы дня недели.
// Повторный вызов для того же дня перезаписывает существующую строку.
// Изменение действует на все будущие вычисления слотов немедленно.
func (s *Service) UpsertWorkingHours(ctx context.Context, salon *domain.Salon, req *models.UpsertWorkingHoursRequest) error {
	s.logger.Info("UpsertWorkingHours: salon=%d, day=%d, open=%s, close=%s, isOpen=%t",
		salon.ID, req.DayOfWeek, req.OpenTime, req.CloseTime, req.IsOpen)

	wh, err := s.toDomainWorkingHours(salon.ID, req)
	if err != nil {
		s.logger.Warn("UpsertWorkingHours: validation failed for salon=%d: %v", salon.ID, err)
		return err
	}

	if err := s.scheduleRepo.UpsertWorkingHours(ctx, wh); err != nil {
		s.logger.Error("UpsertWorkingHours: repository error for salon=%d: %v", salon.ID, err)
		return fmt.Errorf("%w: UpsertWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertWorkingHours: successfully updated day=%d for salon=%d", req.DayOfWeek, salon.ID)
	return nil
}

// ListBlockedDates получает блокировки дат салона за период
func (s *Service) ListBlockedDates(ctx context.Context, salon *domain.Salon, from, to time.Time) (*models.BlockedDateListResponse, error) {
	s.logger.Info("ListBlockedDates: fetching blocked dates for salon=%d, period=%s to %s",
		salon.ID, from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	if to.Before(from) {
		s.logger.Warn("ListBlockedDates: invalid period for salon=%d", salon.ID)
		return nil, fmt.Errorf("%w: period end is before start", ErrInvalidInput)
	}

	dates, err := s.scheduleRepo.ListBlockedDates(ctx, salon.ID, from, to)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error for salon=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedDateList(dates), nil
}

// CreateBlockedDate блокирует дату для салона или отдельного мастера.
// Блокировка действует на будущие вычисления слотов немедленно,
// существующие бронирования она не отменяет.
func (s *Service) CreateBlockedDate(ctx context.Context, salon *domain.Salon, req *models.CreateBlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("CreateBlockedDate: salon=%d, staff=%v, date=%s", salon.ID, req.StaffID, req.Date)

	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		s.logger.Warn("CreateBlockedDate: invalid timezone %q for salon=%d", salon.Timezone, salon.ID)
		loc = time.UTC
	}

	date, err := models.ParseDate(req.Date, loc)
	if err != nil {
		s.logger.Warn("CreateBlockedDate: invalid date %q for salon=%d", req.Date, salon.ID)
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	bd := &domain.BlockedDate{
		SalonID: salon.ID,
		StaffID: req.StaffID,
		Date:    date,
		Reason:  req.Reason,
	}

	created, err := s.scheduleRepo.CreateBlockedDate(ctx, bd)
	if err != nil {
		s.logger.Error("CreateBlockedDate: repository error for salon=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedDate: successfully created blocked date id=%d for salon=%d", created.ID, salon.ID)
	return models.FromDomainBlockedDate(created), nil
}

// DeleteBlockedDate снимает блокировку даты
func (s *Service) DeleteBlockedDate(ctx context.Context, salon *domain.Salon, id int64) error {
	s.logger.Info("DeleteBlockedDate: deleting blocked date id=%d for salon=%d", id, salon.ID)

	if err := s.scheduleRepo.DeleteBlockedDate(ctx, salon.ID, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("DeleteBlockedDate: blocked date id=%d not found for salon=%d", id, salon.ID)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for salon=%d: %v", salon.ID, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedDate: successfully deleted blocked date id=%d", id)
	return nil
}

// toDomainWorkingHours валидирует request и собирает domain модель
func (s *Service) toDomainWorkingHours(salonID int64, req *models.UpsertWorkingHoursRequest) (*domain.WorkingHours, error) {
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}

	openTime, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time", ErrInvalidInput)
	}

	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time", ErrInvalidInput)
	}

	if req.IsOpen && !openTime.IsBefore(closeTime) {
		return nil, ErrInvalidTimeRange
	}

	return &domain.WorkingHours{
		SalonID:   salonID,
		DayOfWeek: req.DayOfWeek,
		OpenTime:  openTime,
		CloseTime: closeTime,
		IsOpen:    req.IsOpen,
	}, nil
}
