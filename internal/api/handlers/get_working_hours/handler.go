package get_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgMissingSalonID = "отсутствует ID салона"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	salons  SalonProvider
	service ScheduleService
	logger  Logger
}

func NewHandler(salons SalonProvider, service ScheduleService, logger Logger) *Handler {
	return &Handler{
		salons:  salons,
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/working-hours - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	authSalonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{id}/working-hours - Missing salon ID")
		handlers.RespondUnauthorized(w, msgMissingSalonID)
		return
	}

	if authSalonID != salonID {
		h.logger.Warn("GET /salons/{id}/working-hours - Access denied: salon_id=%d, auth_salon_id=%d",
			salonID, authSalonID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	salon, err := h.salons.GetByID(r.Context(), salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			h.logger.Warn("GET /salons/{id}/working-hours - Unknown salon: salon_id=%d", salonID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /salons/{id}/working-hours - Failed to load salon: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	result, err := h.service.GetWorkingHours(r.Context(), salon)
	if err != nil {
		h.logger.Error("GET /salons/{id}/working-hours - Failed to get working hours: salon_id=%d, error=%v",
			salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/working-hours - Working hours retrieved successfully: salon_id=%d, count=%d",
		salonID, len(result.WorkingHours))
	handlers.RespondJSON(w, http.StatusOK, result)
}
