package get_unavailable_dates

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	getUnavailableDates "github.com/m04kA/Salon-BookingService/internal/usecase/get_unavailable_dates"
)

const (
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidVariantID    = "некорректный ID варианта услуги"
	msgInvalidStaffID      = "некорректный ID мастера"
	msgInvalidPeriod       = "некорректный период, ожидается from и to в формате YYYY-MM-DD"
	msgSalonNotFound       = "салон не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgVariantNotFound     = "вариант услуги не найден"
	msgStaffNotFound       = "мастер не найден"
	msgServiceNotAvailable = "онлайн-запись на эту услугу недоступна"
)

type Handler struct {
	useCase GetUnavailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetUnavailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonSlug}/availability
// Query params: serviceId (required), staffId (required), from, to (required, YYYY-MM-DD), variantId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonSlug := vars["salonSlug"]

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	staffID, err := strconv.ParseInt(r.URL.Query().Get("staffId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var variantID *int64
	if raw := r.URL.Query().Get("variantId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{slug}/availability - Invalid variant ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidVariantID)
			return
		}
		variantID = &id
	}

	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/availability - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/availability - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getUnavailableDates.Request{
		SalonSlug: salonSlug,
		ServiceID: serviceID,
		VariantID: variantID,
		StaffID:   staffID,
		FromDate:  from,
		ToDate:    to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getUnavailableDates.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{slug}/availability - Salon not found: slug=%s", salonSlug)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getUnavailableDates.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{slug}/availability - Service not found: slug=%s, service_id=%d", salonSlug, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getUnavailableDates.ErrVariantNotFound):
			h.logger.Warn("GET /salons/{slug}/availability - Variant not found: slug=%s, service_id=%d", salonSlug, serviceID)
			handlers.RespondNotFound(w, msgVariantNotFound)

		case errors.Is(err, getUnavailableDates.ErrStaffNotFound):
			h.logger.Warn("GET /salons/{slug}/availability - Staff not found: slug=%s, staff_id=%d", salonSlug, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getUnavailableDates.ErrServiceUnavailable):
			h.logger.Warn("GET /salons/{slug}/availability - Service not bookable online: slug=%s, service_id=%d", salonSlug, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, getUnavailableDates.ErrInvalidPeriod), errors.Is(err, getUnavailableDates.ErrInvalidInput):
			h.logger.Warn("GET /salons/{slug}/availability - Invalid period: slug=%s, error=%v", salonSlug, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /salons/{slug}/availability - Failed to get unavailable dates: slug=%s, service_id=%d, staff_id=%d, error=%v",
				salonSlug, serviceID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{slug}/availability - Unavailable dates retrieved: slug=%s, service_id=%d, staff_id=%d, dates_count=%d",
		salonSlug, serviceID, staffID, len(result.UnavailableDates))
	handlers.RespondJSON(w, http.StatusOK, &UnavailableDatesResponse{
		ServiceID:        result.ServiceID,
		StaffID:          result.StaffID,
		UnavailableDates: result.UnavailableDates,
	})
}

// UnavailableDatesResponse HTTP модель ответа
type UnavailableDatesResponse struct {
	ServiceID        int64    `json:"serviceId"`
	StaffID          int64    `json:"staffId"`
	UnavailableDates []string `json:"unavailableDates"`
}
