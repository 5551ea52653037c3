package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	rescheduleBooking "github.com/m04kA/Salon-BookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSalonNotFound      = "салон не найден"
	msgBookingNotFound    = "запись не найдена или ссылка уже использована"
	msgAlreadyRescheduled = "запись уже была перенесена"
	msgWrongStatus        = "эту запись нельзя перенести"
	msgTooLate            = "запись слишком скоро, перенести её уже нельзя"
	msgInvalidDate        = "некорректная дата переноса"
	msgSlotTaken          = "выбранное время уже занято"
	msgCaptchaFailed      = "проверка капчи не пройдена"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RescheduleRequest HTTP модель запроса на перенос записи
type RescheduleRequest struct {
	Date         string `json:"date"`
	Time         string `json:"time"`
	CaptchaToken string `json:"captchaToken"`
}

// RescheduleResponse HTTP модель ответа
type RescheduleResponse struct {
	Booking BookingData `json:"booking"`
}

// BookingData данные перенесённого бронирования
type BookingData struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	OldDate      string `json:"oldDate"`
	OldStartTime string `json:"oldStartTime"`
}

// Handle POST /api/v1/salons/{salonSlug}/reschedule/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	salonSlug := vars["salonSlug"]
	token := vars["token"]

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /salons/{slug}/reschedule/{token} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		SalonSlug:    salonSlug,
		Token:        token,
		Date:         req.Date,
		StartTime:    req.Time,
		CaptchaToken: req.CaptchaToken,
	})
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /salons/{slug}/reschedule/{token} - Booking not found: slug=%s", salonSlug)
			handlers.RespondErrorCode(w, http.StatusNotFound, handlers.CodeBookingNotFound, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrAlreadyRescheduled):
			h.logger.Warn("POST /salons/{slug}/reschedule/{token} - Already rescheduled: slug=%s", salonSlug)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeAlreadyRescheduled, msgAlreadyRescheduled)

		case errors.Is(err, rescheduleBooking.ErrWrongStatus):
			h.logger.Warn("POST /salons/{slug}/reschedule/{token} - Wrong status: slug=%s", salonSlug)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeWrongStatus, msgWrongStatus)

		case errors.Is(err, rescheduleBooking.ErrTooLate):
			h.logger.Warn("POST /salons/{slug}/reschedule/{token} - Too late: slug=%s", salonSlug)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeTooLate, msgTooLate)

		case errors.Is(err, rescheduleBooking.ErrSlotTaken):
			h.logger.Warn("POST /salons/{slug}/reschedule/{token} - Slot taken: slug=%s, date=%s, time=%s",
				salonSlug, req.Date, req.Time)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeSlotTaken, msgSlotTaken)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			h.logger.Warn("POST /salons/{slug}/reschedule/{token} - Invalid date: slug=%s, date=%s", salonSlug, req.Date)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeInvalidDate, msgInvalidDate)

		case errors.Is(err, rescheduleBooking.ErrCaptchaFailed):
			h.logger.Warn("POST /salons/{slug}/reschedule/{token} - Captcha failed: slug=%s", salonSlug)
			handlers.RespondErrorCode(w, http.StatusBadRequest, handlers.CodeCaptchaFailed, msgCaptchaFailed)

		case errors.Is(err, rescheduleBooking.ErrSalonNotFound):
			h.logger.Warn("POST /salons/{slug}/reschedule/{token} - Salon not found: slug=%s", salonSlug)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("POST /salons/{slug}/reschedule/{token} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /salons/{slug}/reschedule/{token} - Failed to reschedule: slug=%s, error=%v", salonSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /salons/{slug}/reschedule/{token} - Booking rescheduled: slug=%s, booking_id=%d, new=%s %s",
		salonSlug, result.BookingID, result.Date, result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, &RescheduleResponse{Booking: BookingData{
		ID:           result.BookingID,
		Date:         result.Date,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		OldDate:      result.OldDate,
		OldStartTime: result.OldStartTime,
	}})
}
