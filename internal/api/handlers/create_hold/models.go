package create_hold

import (
	"time"

	createHold "github.com/m04kA/Salon-BookingService/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP модель запроса на резервацию слота
type CreateHoldRequest struct {
	ServiceID int64  `json:"serviceId"`
	VariantID *int64 `json:"variantId,omitempty"`
	StaffID   int64  `json:"staffId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest(salonSlug string) *createHold.Request {
	return &createHold.Request{
		SalonSlug: salonSlug,
		ServiceID: r.ServiceID,
		VariantID: r.VariantID,
		StaffID:   r.StaffID,
		Date:      r.Date,
		StartTime: r.Time,
	}
}

// CreateHoldResponse HTTP модель ответа
type CreateHoldResponse struct {
	Hold HoldData `json:"hold"`
}

// HoldData данные созданного hold'а
type HoldData struct {
	ID           int64     `json:"id"`
	SessionToken string    `json:"sessionToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *CreateHoldResponse {
	return &CreateHoldResponse{Hold: HoldData{
		ID:           resp.HoldID,
		SessionToken: resp.SessionToken,
		ExpiresAt:    resp.ExpiresAt,
		Date:         resp.Date,
		StartTime:    resp.StartTime,
		EndTime:      resp.EndTime,
	}}
}
