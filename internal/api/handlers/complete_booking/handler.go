package complete_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	completeBooking "github.com/m04kA/Salon-BookingService/internal/usecase/complete_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSalonNotFound      = "салон не найден"
	msgHoldExpired        = "время резервации истекло, выберите слот заново"
	msgSlotTaken          = "выбранное время уже занято"
	msgCaptchaFailed      = "проверка капчи не пройдена"
	msgInvalidInput       = "некорректные данные формы"
)

type Handler struct {
	useCase CompleteBookingUseCase
	logger  Logger
}

func NewHandler(useCase CompleteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/salons/{salonSlug}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonSlug := vars["salonSlug"]

	var req CompleteBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{slug}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(salonSlug))
	if err != nil {
		switch {
		case errors.Is(err, completeBooking.ErrHoldExpired):
			h.logger.Warn("POST /salons/{slug}/bookings - Hold expired: slug=%s, hold_id=%d", salonSlug, req.HoldID)
			handlers.RespondErrorCode(w, http.StatusGone, handlers.CodeHoldExpired, msgHoldExpired)

		case errors.Is(err, completeBooking.ErrSlotTaken):
			h.logger.Warn("POST /salons/{slug}/bookings - Slot taken: slug=%s, hold_id=%d", salonSlug, req.HoldID)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeSlotTaken, msgSlotTaken)

		case errors.Is(err, completeBooking.ErrCaptchaFailed):
			h.logger.Warn("POST /salons/{slug}/bookings - Captcha failed: slug=%s, hold_id=%d", salonSlug, req.HoldID)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeCaptchaFailed, msgCaptchaFailed)

		case errors.Is(err, completeBooking.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{slug}/bookings - Salon not found: slug=%s", salonSlug)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, completeBooking.ErrInvalidInput):
			h.logger.Warn("POST /salons/{slug}/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /salons/{slug}/bookings - Failed to complete booking: slug=%s, hold_id=%d, error=%v",
				salonSlug, req.HoldID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{slug}/bookings - Booking created: slug=%s, booking_id=%d, date=%s %s",
		salonSlug, result.BookingID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
