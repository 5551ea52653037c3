package delete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingSalonID   = "отсутствует ID салона"
	msgForbidden        = "доступ запрещен"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	salons  SalonProvider
	service BookingsService
	logger  Logger
}

func NewHandler(salons SalonProvider, service BookingsService, logger Logger) *Handler {
	return &Handler{
		salons:  salons,
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	salonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Missing salon ID")
		handlers.RespondUnauthorized(w, msgMissingSalonID)
		return
	}

	salon, err := h.salons.GetByID(r.Context(), salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			h.logger.Warn("DELETE /bookings/{id} - Unknown salon: salon_id=%d", salonID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("DELETE /bookings/{id} - Failed to load salon: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	if err := h.service.Delete(r.Context(), salon, bookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("DELETE /bookings/{id} - Booking not found: booking_id=%d, salon_id=%d",
				bookingID, salonID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /bookings/{id} - Failed to delete booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking deleted successfully: booking_id=%d, salon_id=%d",
		bookingID, salonID)
	handlers.RespondNoContent(w)
}
