package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/Salon-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidVariantID    = "некорректный ID варианта услуги"
	msgInvalidStaffID      = "некорректный ID мастера"
	msgMissingDate         = "дата обязательна"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgSalonNotFound       = "салон не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgVariantNotFound     = "вариант услуги не найден"
	msgStaffNotFound       = "мастер не найден"
	msgServiceNotAvailable = "онлайн-запись на эту услугу недоступна"
	msgDateInPast          = "дата уже прошла"
	msgDateTooFar          = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/salons/{salonSlug}/slots
// Query params: serviceId (required), staffId (required), date (required, YYYY-MM-DD), variantId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonSlug := vars["salonSlug"]

	serviceID, err := strconv.ParseInt(r.URL.Query().Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	staffID, err := strconv.ParseInt(r.URL.Query().Get("staffId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	var variantID *int64
	if raw := r.URL.Query().Get("variantId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.logger.Warn("GET /salons/{slug}/slots - Invalid variant ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidVariantID)
			return
		}
		variantID = &id
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{slug}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(salonSlug, serviceID, staffID, variantID, dateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{slug}/slots - Salon not found: slug=%s", salonSlug)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /salons/{slug}/slots - Service not found: slug=%s, service_id=%d", salonSlug, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrVariantNotFound):
			h.logger.Warn("GET /salons/{slug}/slots - Variant not found: slug=%s, service_id=%d", salonSlug, serviceID)
			handlers.RespondNotFound(w, msgVariantNotFound)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /salons/{slug}/slots - Staff not found: slug=%s, staff_id=%d", salonSlug, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceUnavailable):
			h.logger.Warn("GET /salons/{slug}/slots - Service not bookable online: slug=%s, service_id=%d", salonSlug, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /salons/{slug}/slots - Date in past: slug=%s, date=%s", salonSlug, dateStr)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /salons/{slug}/slots - Date too far: slug=%s, date=%s", salonSlug, dateStr)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /salons/{slug}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /salons/{slug}/slots - Failed to get slots: slug=%s, service_id=%d, staff_id=%d, error=%v",
				salonSlug, serviceID, staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /salons/{slug}/slots - Slots retrieved: slug=%s, service_id=%d, staff_id=%d, slots_count=%d",
		salonSlug, serviceID, staffID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
