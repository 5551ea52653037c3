package get_salon_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgMissingSalonID = "отсутствует ID салона"
	msgForbidden      = "доступ запрещен"
	msgInvalidParams  = "некорректные параметры запроса"
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

// Handle GET /api/v1/salons/{salonId}/bookings
// Query params: staffId, from, to, status, includeInactive (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	// Получаем salonID из контекста (через middleware Auth)
	authSalonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{id}/bookings - Missing salon ID")
		handlers.RespondUnauthorized(w, msgMissingSalonID)
		return
	}

	if authSalonID != salonID {
		h.logger.Warn("GET /salons/{id}/bookings - Access denied: salon_id=%d, auth_salon_id=%d",
			salonID, authSalonID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	salon, err := h.salons.GetByID(r.Context(), salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			h.logger.Warn("GET /salons/{id}/bookings - Unknown salon: salon_id=%d", salonID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /salons/{id}/bookings - Failed to load salon: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		loc = time.UTC
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(
		query.Get("staffId"),
		query.Get("from"),
		query.Get("to"),
		query.Get("status"),
		query.Get("includeInactive"),
		loc,
	)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetSalonBookings(r.Context(), salon, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /salons/{id}/bookings - Invalid filter: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /salons/{id}/bookings - Failed to get bookings: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{id}/bookings - Bookings retrieved successfully: salon_id=%d, count=%d",
		salonID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
