package get_salon_bookings

import (
	"strconv"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтр из query параметров.
// Даты трактуются в часовом поясе салона.
func ToServiceRequest(staffIDStr, fromStr, toStr, statusStr, includeInactiveStr string, loc *time.Location) (*models.GetSalonBookingsRequest, error) {
	req := &models.GetSalonBookingsRequest{}

	if staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	if fromStr != "" {
		from, err := time.ParseInLocation(domain.DateFormat, fromStr, loc)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.ParseInLocation(domain.DateFormat, toStr, loc)
		if err != nil {
			return nil, err
		}
		// Конец периода включительно: до конца дня
		end := to.AddDate(0, 0, 1)
		req.EndDate = &end
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
