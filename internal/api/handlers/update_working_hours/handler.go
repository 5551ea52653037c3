package update_working_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/schedule"
	"github.com/m04kA/Salon-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgMissingSalonID     = "отсутствует ID салона"
	msgForbidden          = "доступ запрещен"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDayOfWeek   = "некорректный день недели"
	msgInvalidTimeRange   = "время открытия должно быть раньше времени закрытия"
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

// Handle PUT /api/v1/salons/{salonId}/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/working-hours - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	authSalonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("PUT /salons/{id}/working-hours - Missing salon ID")
		handlers.RespondUnauthorized(w, msgMissingSalonID)
		return
	}

	if authSalonID != salonID {
		h.logger.Warn("PUT /salons/{id}/working-hours - Access denied: salon_id=%d, auth_salon_id=%d",
			salonID, authSalonID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	salon, err := h.salons.GetByID(r.Context(), salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			h.logger.Warn("PUT /salons/{id}/working-hours - Unknown salon: salon_id=%d", salonID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("PUT /salons/{id}/working-hours - Failed to load salon: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	var req models.UpsertWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /salons/{id}/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpsertWorkingHours(r.Context(), salon, &req); err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidDayOfWeek):
			h.logger.Warn("PUT /salons/{id}/working-hours - Invalid day of week: salon_id=%d, day=%d",
				salonID, req.DayOfWeek)
			handlers.RespondBadRequest(w, msgInvalidDayOfWeek)

		case errors.Is(err, schedule.ErrInvalidTimeRange), errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/working-hours - Invalid time range: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		default:
			h.logger.Error("PUT /salons/{id}/working-hours - Failed to upsert working hours: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/working-hours - Working hours updated successfully: salon_id=%d, day=%d",
		salonID, req.DayOfWeek)
	handlers.RespondNoContent(w)
}
