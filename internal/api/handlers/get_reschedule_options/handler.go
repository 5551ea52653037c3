package get_reschedule_options

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/Salon-BookingService/internal/api/handlers"
	"github.com/m04kA/Salon-BookingService/internal/domain"
	getRescheduleOptions "github.com/m04kA/Salon-BookingService/internal/usecase/get_reschedule_options"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDate        = "дата обязательна"
	msgSalonNotFound      = "салон не найден"
	msgBookingNotFound    = "запись не найдена или ссылка уже использована"
	msgAlreadyRescheduled = "запись уже была перенесена"
	msgWrongStatus        = "эту запись нельзя перенести"
	msgTooLate            = "запись слишком скоро, перенести её уже нельзя"
)

type Handler struct {
	useCase GetRescheduleOptionsUseCase
	logger  Logger
}

func NewHandler(useCase GetRescheduleOptionsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// BookingSummaryData данные бронирования на странице переноса
type BookingSummaryData struct {
	ServiceID       int64   `json:"serviceId"`
	StaffID         int64   `json:"staffId"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
}

// RescheduleOptionsResponse HTTP модель ответа
type RescheduleOptionsResponse struct {
	Booking BookingSummaryData `json:"booking"`
	Slots   []string           `json:"slots,omitempty"`
}

func fromUseCaseResponse(resp *getRescheduleOptions.Response) *RescheduleOptionsResponse {
	out := &RescheduleOptionsResponse{Booking: BookingSummaryData{
		ServiceID:       resp.Booking.ServiceID,
		StaffID:         resp.Booking.StaffID,
		ServiceName:     resp.Booking.ServiceName,
		DurationMinutes: resp.Booking.DurationMinutes,
		Price:           resp.Booking.Price,
		Date:            resp.Booking.Date,
		StartTime:       resp.Booking.StartTime,
	}}
	if resp.Slots != nil {
		out.Slots = make([]string, len(resp.Slots))
		for i, s := range resp.Slots {
			out.Slots[i] = s.String()
		}
	}
	return out
}

// Handle GET /api/v1/salons/{salonSlug}/reschedule/{token}
// Проверяет пригодность записи к переносу, ничего не мутирует
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	h.execute(w, r, &getRescheduleOptions.Request{
		SalonSlug: vars["salonSlug"],
		Token:     vars["token"],
	})
}

// HandleSlots GET /api/v1/salons/{salonSlug}/reschedule/{token}/slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) HandleSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /salons/{slug}/reschedule/{token}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /salons/{slug}/reschedule/{token}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	h.execute(w, r, &getRescheduleOptions.Request{
		SalonSlug: vars["salonSlug"],
		Token:     vars["token"],
		Date:      &date,
	})
}

func (h *Handler) execute(w http.ResponseWriter, r *http.Request, req *getRescheduleOptions.Request) {
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getRescheduleOptions.ErrSalonNotFound):
			h.logger.Warn("GET /salons/{slug}/reschedule/{token} - Salon not found: slug=%s", req.SalonSlug)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, getRescheduleOptions.ErrBookingNotFound):
			h.logger.Warn("GET /salons/{slug}/reschedule/{token} - Booking not found: slug=%s", req.SalonSlug)
			handlers.RespondErrorCode(w, http.StatusNotFound, handlers.CodeBookingNotFound, msgBookingNotFound)

		case errors.Is(err, getRescheduleOptions.ErrAlreadyRescheduled):
			h.logger.Warn("GET /salons/{slug}/reschedule/{token} - Already rescheduled: slug=%s", req.SalonSlug)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeAlreadyRescheduled, msgAlreadyRescheduled)

		case errors.Is(err, getRescheduleOptions.ErrWrongStatus):
			h.logger.Warn("GET /salons/{slug}/reschedule/{token} - Wrong status: slug=%s", req.SalonSlug)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeWrongStatus, msgWrongStatus)

		case errors.Is(err, getRescheduleOptions.ErrTooLate):
			h.logger.Warn("GET /salons/{slug}/reschedule/{token} - Too late: slug=%s", req.SalonSlug)
			handlers.RespondErrorCode(w, http.StatusConflict, handlers.CodeTooLate, msgTooLate)

		case errors.Is(err, getRescheduleOptions.ErrInvalidInput):
			h.logger.Warn("GET /salons/{slug}/reschedule/{token} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /salons/{slug}/reschedule/{token} - Failed: slug=%s, error=%v", req.SalonSlug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /salons/{slug}/reschedule/{token} - Options retrieved: slug=%s, slots_count=%d",
		req.SalonSlug, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}
