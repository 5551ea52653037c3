package reschedule_booking

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.SalonSlug == "" {
		return fmt.Errorf("%w: salon slug is required", ErrInvalidInput)
	}
	if req.Token == "" {
		return fmt.Errorf("%w: reschedule token is required", ErrInvalidInput)
	}
	if req.Date == "" {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime == "" {
		return fmt.Errorf("%w: start_time is required", ErrInvalidInput)
	}
	return nil
}
