package create_hold

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	createHold "github.com/m04kA/Salon-BookingService/internal/usecase/create_hold"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgSalonNotFound       = "салон не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgVariantNotFound     = "вариант услуги не найден"
	msgStaffNotFound       = "мастер не найден"
	msgServiceNotAvailable = "онлайн-запись на эту услугу недоступна"
	msgSlotTaken           = "выбранное время уже занято"
	msgSlotUnavailable     = "выбранное время вне рабочих часов"
	msgTooEarly            = "до выбранного времени осталось слишком мало времени"
	msgInvalidDate         = "некорректная дата записи"
	msgInvalidInput        = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonSlug}/holds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonSlug := vars["salonSlug"]

	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{slug}/holds - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(salonSlug))
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrSlotTaken):
			h.logger.Warn("POST /salons/{slug}/holds - Slot taken: slug=%s, staff_id=%d, date=%s, time=%s",
				salonSlug, req.StaffID, req.Date, req.Time)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeSlotTaken, msgSlotTaken)

		case errors.Is(err, createHold.ErrSlotUnavailable):
			h.logger.Warn("POST /salons/{slug}/holds - Slot outside working hours: slug=%s, date=%s, time=%s",
				salonSlug, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgSlotUnavailable)

		case errors.Is(err, createHold.ErrTooEarly):
			h.logger.Warn("POST /salons/{slug}/holds - Too early: slug=%s, date=%s, time=%s",
				salonSlug, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgTooEarly)

		case errors.Is(err, createHold.ErrInvalidDate):
			h.logger.Warn("POST /salons/{slug}/holds - Invalid date: slug=%s, date=%s", salonSlug, req.Date)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgInvalidDate)

		case errors.Is(err, createHold.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{slug}/holds - Salon not found: slug=%s", salonSlug)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, createHold.ErrServiceNotFound):
			h.logger.Warn("POST /salons/{slug}/holds - Service not found: slug=%s, service_id=%d", salonSlug, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createHold.ErrVariantNotFound):
			h.logger.Warn("POST /salons/{slug}/holds - Variant not found: slug=%s, service_id=%d", salonSlug, req.ServiceID)
			handlers.RespondNotFound(w, msgVariantNotFound)

		case errors.Is(err, createHold.ErrStaffNotFound):
			h.logger.Warn("POST /salons/{slug}/holds - Staff not found: slug=%s, staff_id=%d", salonSlug, req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createHold.ErrServiceUnavailable):
			h.logger.Warn("POST /salons/{slug}/holds - Service not bookable online: slug=%s, service_id=%d", salonSlug, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /salons/{slug}/holds - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /salons/{slug}/holds - Failed to create hold: slug=%s, staff_id=%d, error=%v",
				salonSlug, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{slug}/holds - Hold created: slug=%s, hold_id=%d, expires_at=%s",
		salonSlug, result.HoldID, result.ExpiresAt)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
