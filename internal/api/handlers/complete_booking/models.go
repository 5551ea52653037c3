package complete_booking

import (
	completeBooking "github.com/m04kA/Salon-BookingService/internal/usecase/complete_booking"
)

// CompleteBookingRequest HTTP модель запроса на подтверждение записи
type CompleteBookingRequest struct {
	HoldID       int64   `json:"holdId"`
	SessionToken string  `json:"sessionToken"`
	ClientName   string  `json:"clientName"`
	ClientPhone  string  `json:"clientPhone"`
	ClientEmail  *string `json:"clientEmail,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	CaptchaToken string  `json:"captchaToken"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CompleteBookingRequest) ToUseCaseRequest(salonSlug string) *completeBooking.Request {
	return &completeBooking.Request{
		SalonSlug:    salonSlug,
		HoldID:       r.HoldID,
		SessionToken: r.SessionToken,
		ClientName:   r.ClientName,
		ClientPhone:  r.ClientPhone,
		ClientEmail:  r.ClientEmail,
		Notes:        r.Notes,
		CaptchaToken: r.CaptchaToken,
	}
}

// CompleteBookingResponse HTTP модель ответа
type CompleteBookingResponse struct {
	Booking BookingData `json:"booking"`
}

// BookingData данные созданного бронирования
type BookingData struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	Status          string `json:"status"`
	CancelToken     string `json:"cancelToken"`
	RescheduleToken string `json:"rescheduleToken"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completeBooking.Response) *CompleteBookingResponse {
	return &CompleteBookingResponse{Booking: BookingData{
		ID:              resp.BookingID,
		Date:            resp.Date,
		StartTime:       resp.StartTime,
		Status:          resp.Status,
		CancelToken:     resp.CancelToken,
		RescheduleToken: resp.RescheduleToken,
	}}
}
