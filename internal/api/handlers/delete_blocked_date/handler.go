package delete_blocked_date

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/schedule"
)

const (
	msgInvalidSalonID       = "некорректный ID салона"
	msgInvalidBlockedDateID = "некорректный ID блокировки"
	msgMissingSalonID       = "отсутствует ID салона"
	msgForbidden            = "доступ запрещен"
	msgNotFound             = "блокировка не найдена"
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

// Handle DELETE /api/v1/salons/{salonId}/blocked-dates/{blockedDateId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]
	blockedDateIDStr := vars["blockedDateId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/blocked-dates/{id} - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	blockedDateID, err := strconv.ParseInt(blockedDateIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /salons/{id}/blocked-dates/{id} - Invalid blocked date ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockedDateID)
		return
	}

	authSalonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /salons/{id}/blocked-dates/{id} - Missing salon ID")
		handlers.RespondUnauthorized(w, msgMissingSalonID)
		return
	}

	if authSalonID != salonID {
		h.logger.Warn("DELETE /salons/{id}/blocked-dates/{id} - Access denied: salon_id=%d, auth_salon_id=%d",
			salonID, authSalonID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	salon, err := h.salons.GetByID(r.Context(), salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			h.logger.Warn("DELETE /salons/{id}/blocked-dates/{id} - Unknown salon: salon_id=%d", salonID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("DELETE /salons/{id}/blocked-dates/{id} - Failed to load salon: salon_id=%d, error=%v",
			salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	if err := h.service.DeleteBlockedDate(r.Context(), salon, blockedDateID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlockedDateNotFound):
			h.logger.Warn("DELETE /salons/{id}/blocked-dates/{id} - Blocked date not found: salon_id=%d, id=%d",
				salonID, blockedDateID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /salons/{id}/blocked-dates/{id} - Failed to delete blocked date: salon_id=%d, id=%d, error=%v",
				salonID, blockedDateID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /salons/{id}/blocked-dates/{id} - Blocked date deleted successfully: salon_id=%d, id=%d",
		salonID, blockedDateID)
	handlers.RespondNoContent(w)
}
