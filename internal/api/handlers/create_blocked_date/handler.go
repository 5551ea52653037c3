package create_blocked_date

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
	msgInvalidData        = "некорректные данные блокировки"
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

// Handle POST /api/v1/salons/{salonId}/blocked-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /salons/{id}/blocked-dates - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	authSalonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("POST /salons/{id}/blocked-dates - Missing salon ID")
		handlers.RespondUnauthorized(w, msgMissingSalonID)
		return
	}

	if authSalonID != salonID {
		h.logger.Warn("POST /salons/{id}/blocked-dates - Access denied: salon_id=%d, auth_salon_id=%d",
			salonID, authSalonID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	salon, err := h.salons.GetByID(r.Context(), salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			h.logger.Warn("POST /salons/{id}/blocked-dates - Unknown salon: salon_id=%d", salonID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("POST /salons/{id}/blocked-dates - Failed to load salon: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	var req models.CreateBlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{id}/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBlockedDate(r.Context(), salon, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /salons/{id}/blocked-dates - Invalid data: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /salons/{id}/blocked-dates - Failed to create blocked date: salon_id=%d, error=%v",
				salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{id}/blocked-dates - Blocked date created successfully: salon_id=%d, id=%d, date=%s",
		salonID, result.ID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
