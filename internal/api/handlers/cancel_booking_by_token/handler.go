package cancel_booking_by_token

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings"
)

const (
	msgSalonNotFound   = "салон не найден"
	msgBookingNotFound = "запись не найдена"
	msgCannotCancel    = "эту запись уже нельзя отменить"
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

// Handle POST /api/v1/salons/{salonSlug}/bookings/cancel/{cancelToken}
// Отмена по ссылке из письма. Повторная отмена идемпотентна.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonSlug := vars["salonSlug"]
	cancelToken := vars["cancelToken"]

	salon, err := h.salons.GetBySlug(r.Context(), salonSlug)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			h.logger.Warn("POST /salons/{slug}/bookings/cancel/{token} - Salon not found: slug=%s", salonSlug)
			handlers.RespondNotFound(w, msgSalonNotFound)
			return
		}
		h.logger.Error("POST /salons/{slug}/bookings/cancel/{token} - Failed to get salon: slug=%s, error=%v", salonSlug, err)
		handlers.RespondInternalError(w)
		return
	}

	if err := h.service.CancelByToken(r.Context(), salon, cancelToken); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /salons/{slug}/bookings/cancel/{token} - Booking not found: slug=%s", salonSlug)
			handlers.RespondErrorCode(w, http.StatusNotFound, handlers.CodeBookingNotFound, msgBookingNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("POST /salons/{slug}/bookings/cancel/{token} - Cannot cancel: slug=%s", salonSlug)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeWrongStatus, msgCannotCancel)

		default:
			h.logger.Error("POST /salons/{slug}/bookings/cancel/{token} - Failed to cancel: slug=%s, error=%v", salonSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{slug}/bookings/cancel/{token} - Booking cancelled: slug=%s", salonSlug)
	handlers.RespondNoContent(w)
}
