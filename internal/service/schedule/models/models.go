package models

import (
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
)

// Request модели

// UpsertWorkingHoursRequest запрос на установку рабочих часов дня недели
type UpsertWorkingHoursRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	OpenTime  string `json:"openTime"`  // "09:00"
	CloseTime string `json:"closeTime"` // "18:00"
	IsOpen    bool   `json:"isOpen"`
}

// CreateBlockedDateRequest запрос на блокировку даты
type CreateBlockedDateRequest struct {
	StaffID *int64  `json:"staffId,omitempty"` // nil - закрыт весь салон
	Date    string  `json:"date"`              // "2025-10-15"
	Reason  *string `json:"reason,omitempty"`
}

// Response модели

// WorkingHoursResponse рабочие часы одного дня недели
type WorkingHoursResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
	IsOpen    bool   `json:"isOpen"`
}

// WorkingHoursListResponse недельное расписание салона
type WorkingHoursListResponse struct {
	WorkingHours []*WorkingHoursResponse `json:"workingHours"`
}

// BlockedDateResponse блокировка даты
type BlockedDateResponse struct {
	ID      int64   `json:"id"`
	StaffID *int64  `json:"staffId,omitempty"`
	Date    string  `json:"date"`
	Reason  *string `json:"reason,omitempty"`
}

// BlockedDateListResponse список блокировок
type BlockedDateListResponse struct {
	BlockedDates []*BlockedDateResponse `json:"blockedDates"`
	Total        int                    `json:"total"`
}

// FromDomainWorkingHours конвертирует domain рабочие часы в response
func FromDomainWorkingHours(wh *domain.WorkingHours) *WorkingHoursResponse {
	return &WorkingHoursResponse{
		DayOfWeek: wh.DayOfWeek,
		OpenTime:  wh.OpenTime.String(),
		CloseTime: wh.CloseTime.String(),
		IsOpen:    wh.IsOpen,
	}
}

// FromDomainWorkingHoursList конвертирует список рабочих часов в response
func FromDomainWorkingHoursList(hours []*domain.WorkingHours) *WorkingHoursListResponse {
	responses := make([]*WorkingHoursResponse, 0, len(hours))
	for _, wh := range hours {
		responses = append(responses, FromDomainWorkingHours(wh))
	}
	return &WorkingHoursListResponse{WorkingHours: responses}
}

// FromDomainBlockedDate конвертирует domain блокировку в response
func FromDomainBlockedDate(bd *domain.BlockedDate) *BlockedDateResponse {
	return &BlockedDateResponse{
		ID:      bd.ID,
		StaffID: bd.StaffID,
		Date:    bd.Date.Format(domain.DateFormat),
		Reason:  bd.Reason,
	}
}

// FromDomainBlockedDateList конвертирует список блокировок в response
func FromDomainBlockedDateList(dates []*domain.BlockedDate) *BlockedDateListResponse {
	responses := make([]*BlockedDateResponse, 0, len(dates))
	for _, bd := range dates {
		responses = append(responses, FromDomainBlockedDate(bd))
	}
	return &BlockedDateListResponse{
		BlockedDates: responses,
		Total:        len(responses),
	}
}

// ParseDate разбирает дату формата "2006-01-02" в часовом поясе салона
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(domain.DateFormat, s, loc)
}
