package get_unavailable_dates

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonSlug == "" {
		return fmt.Errorf("%w: salon slug is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.VariantID != nil && *req.VariantID <= 0 {
		return fmt.Errorf("%w: variantID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.FromDate.IsZero() || req.ToDate.IsZero() {
		return fmt.Errorf("%w: period is required", ErrInvalidInput)
	}

	if req.ToDate.Before(req.FromDate) {
		return fmt.Errorf("%w: period end is before start", ErrInvalidPeriod)
	}

	if req.ToDate.Sub(req.FromDate).Hours() > 24*maxPeriodDays {
		return fmt.Errorf("%w: period exceeds %d days", ErrInvalidPeriod, maxPeriodDays)
	}

	return nil
}
