package get_blocked_dates

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/api/middleware"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidSalonID = "некорректный ID салона"
	msgMissingSalonID = "отсутствует ID салона"
	msgForbidden      = "доступ запрещен"
	msgInvalidPeriod  = "некорректный период"
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

// Handle GET /api/v1/salons/{salonId}/blocked-dates
// Query params: from, to (опционально, по умолчанию ближайшие 90 дней)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonIDStr := vars["salonId"]

	salonID, err := strconv.ParseInt(salonIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/blocked-dates - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	authSalonID, ok := middleware.GetSalonID(r.Context())
	if !ok {
		h.logger.Warn("GET /salons/{id}/blocked-dates - Missing salon ID")
		handlers.RespondUnauthorized(w, msgMissingSalonID)
		return
	}

	if authSalonID != salonID {
		h.logger.Warn("GET /salons/{id}/blocked-dates - Access denied: salon_id=%d, auth_salon_id=%d",
			salonID, authSalonID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	salon, err := h.salons.GetByID(r.Context(), salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			h.logger.Warn("GET /salons/{id}/blocked-dates - Unknown salon: salon_id=%d", salonID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /salons/{id}/blocked-dates - Failed to load salon: salon_id=%d, error=%v", salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	loc, err := time.LoadLocation(salon.Timezone)
	if err != nil {
		loc = time.UTC
	}

	from, to, err := parsePeriod(r.URL.Query().Get("from"), r.URL.Query().Get("to"), loc)
	if err != nil {
		h.logger.Warn("GET /salons/{id}/blocked-dates - Invalid period: salon_id=%d, error=%v", salonID, err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.ListBlockedDates(r.Context(), salon, from, to)
	if err != nil {
		h.logger.Error("GET /salons/{id}/blocked-dates - Failed to list blocked dates: salon_id=%d, error=%v",
			salonID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /salons/{id}/blocked-dates - Blocked dates retrieved successfully: salon_id=%d, count=%d",
		salonID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parsePeriod(fromStr, toStr string, loc *time.Location) (time.Time, time.Time, error) {
	now := time.Now().In(loc)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, domain.DefaultMaxAdvanceDays)

	var err error
	if fromStr != "" {
		from, err = models.ParseDate(fromStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if toStr != "" {
		to, err = models.ParseDate(toStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	return from, to, nil
}
