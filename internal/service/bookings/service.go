package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/Salon-BookingService/internal/integrations/mailer"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями из дашборда
// и отмены по клиентской ссылке
type Service struct {
	bookingRepo  BookingRepository
	mailerClient MailerClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	mailerClient MailerClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		mailerClient: mailerClient,
		logger:       logger,
	}
}

// GetByID получает бронирование салона по ID.
// Бронирование чужого салона неотличимо от несуществующего.
func (s *Service) GetByID(ctx context.Context, salon *domain.Salon, bookingID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for salon=%d", bookingID, salon.ID)

	booking, err := s.getSalonBooking(ctx, salon, bookingID, "GetByID")
	if err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, s.salonLocation(salon)), nil
}

// GetSalonBookings получает бронирования салона с фильтрацией
// по мастеру, периоду и статусу
func (s *Service) GetSalonBookings(ctx context.Context, salon *domain.Salon, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetSalonBookings: fetching bookings for salon=%d", salon.ID)

	filter, err := req.ToDomainFilter(salon.ID)
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: successfully fetched %d bookings for salon=%d", len(bookings), salon.ID)
	return models.FromDomainBookingList(bookings, s.salonLocation(salon)), nil
}

// UpdateStatus обновляет статус бронирования из дашборда.
// Допустимы только переходы pending → confirmed → completed/no_show
// и отмена из pending/confirmed.
func (s *Service) UpdateStatus(ctx context.Context, salon *domain.Salon, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s for salon=%d", bookingID, req.Status, salon.ID)

	booking, err := s.getSalonBooking(ctx, salon, bookingID, "UpdateStatus")
	if err != nil {
		return err
	}

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// Cancel отменяет бронирование из дашборда
func (s *Service) Cancel(ctx context.Context, salon *domain.Salon, bookingID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d for salon=%d", bookingID, salon.ID)

	booking, err := s.getSalonBooking(ctx, salon, bookingID, "Cancel")
	if err != nil {
		return err
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// CancelByToken отменяет бронирование по одноразовой клиентской ссылке.
// Повторная отмена уже отменённого бронирования успешна (идемпотентность),
// завершённые и неявки отменить нельзя.
func (s *Service) CancelByToken(ctx context.Context, salon *domain.Salon, cancelToken string) error {
	s.logger.Info("CancelByToken: cancelling booking by token for salon=%d", salon.ID)

	booking, err := s.bookingRepo.GetByCancelToken(ctx, salon.ID, cancelToken)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("CancelByToken: no booking for token in salon=%d", salon.ID)
			return ErrBookingNotFound
		}
		s.logger.Error("CancelByToken: repository error for salon=%d: %v", salon.ID, err)
		return fmt.Errorf("%w: CancelByToken - repository error: %v", ErrInternal, err)
	}

	if booking.Status == domain.StatusCancelled {
		s.logger.Info("CancelByToken: booking id=%d is already cancelled", booking.ID)
		return nil
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("CancelByToken: booking id=%d cannot be cancelled, status=%s", booking.ID, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("CancelByToken: repository error for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: CancelByToken - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CancelByToken: successfully cancelled booking id=%d", booking.ID)
	s.sendCancellationNotice(salon, booking)

	return nil
}

// Delete удаляет бронирование без возможности восстановления.
// Доступ ограничивается на уровне API ролями owner/admin.
func (s *Service) Delete(ctx context.Context, salon *domain.Salon, bookingID int64) error {
	s.logger.Info("Delete: deleting booking id=%d for salon=%d", bookingID, salon.ID)

	if _, err := s.getSalonBooking(ctx, salon, bookingID, "Delete"); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)
	return nil
}

// Вспомогательные методы

// getSalonBooking загружает бронирование и проверяет принадлежность салону
func (s *Service) getSalonBooking(ctx context.Context, salon *domain.Salon, bookingID int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.SalonID != salon.ID {
		s.logger.Warn("%s: booking id=%d belongs to salon=%d, requested by salon=%d",
			op, bookingID, booking.SalonID, salon.ID)
		return nil, ErrBookingNotFound
	}

	return booking, nil
}

// salonLocation возвращает часовой пояс салона, UTC при некорректной зоне
func (s *Service) salonLocation(salon *domain.Salon) *time.Location {
	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		s.logger.Warn("salonLocation: invalid timezone %q for salon=%d, falling back to UTC", salon.Timezone, salon.ID)
		return time.UTC
	}
	return loc
}

// sendCancellationNotice отправляет клиенту письмо об отмене в фоне.
// Ошибка отправки логируется и не влияет на результат отмены.
func (s *Service) sendCancellationNotice(salon *domain.Salon, booking *domain.Booking) {
	if booking.ClientEmail == nil || *booking.ClientEmail == "" {
		return
	}

	loc := s.salonLocation(salon)
	email := &mailer.BookingEmail{
		SalonName:   salon.Name,
		SalonSlug:   salon.Slug,
		ClientName:  booking.ClientName,
		ClientEmail: *booking.ClientEmail,
		ServiceName: booking.ServiceName,
		Date:        booking.StartTime.In(loc).Format(domain.DateFormat),
		StartTime:   booking.StartTime.In(loc).Format(domain.TimeFormat),
		Price:       booking.ServicePrice,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.mailerClient.SendCancellationNotice(ctx, email); err != nil {
			s.logger.Error("sendCancellationNotice: failed to send email for booking id=%d: %v", booking.ID, err)
		}
	}()
}
